package resend

import (
	"fmt"
	"strings"
)

func footerNote(adminEmail string) string {
	if adminEmail == "" {
		adminEmail = "den Administratoren"
	}
	return fmt.Sprintf(`<div style="border-top: 1px solid #e2e8f0; margin-top: 40px; padding-top: 20px;">
  <p style="color: #94a3b8; font-size: 11px; line-height: 1.5; margin: 0;">
    Falls du diese Mail fälschlicherweise erhalten hast und dich nicht zum Dienst registriert hast, melde dich bitte umgehend bei: %s
  </p>
</div>`, adminEmail)
}

func detailsBox(accent string, mail SlotMail) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div style="background-color: #f1f5f9; border-left: 4px solid %s; padding: 20px; margin: 20px 0; border-radius: 8px;">`, accent)
	fmt.Fprintf(&b, `<p style="margin: 0 0 10px 0; font-weight: bold; font-size: 18px;">%s</p>`, mail.Category)
	fmt.Fprintf(&b, `<p style="margin: 5px 0;"><strong>Spiel:</strong> %s</p>`, mail.MatchTitle)
	fmt.Fprintf(&b, `<p style="margin: 5px 0;"><strong>Datum:</strong> %s</p>`, mail.Date)
	if mail.Time != "" {
		fmt.Fprintf(&b, `<p style="margin: 5px 0;"><strong>Uhrzeit:</strong> %s</p>`, mail.Time)
	}
	if mail.Location != "" {
		fmt.Fprintf(&b, `<p style="margin: 5px 0;"><strong>Ort:</strong> %s</p>`, mail.Location)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func confirmationMail(mail SlotMail, adminEmail string) (subject, html, text string) {
	subject = "Bestätigung: Dein Dienst bei der SG Ruwertal"

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Hallo %s,</h1>
  <p>danke für deinen Einsatz! Du bist erfolgreich eingetragen für:</p>
  %s
  <p>Wir freuen uns auf deinen Einsatz! 🏆</p>
  <p>Mit sportlichen Grüßen,<br>SG Ruwertal</p>
  %s
</div>`, mail.Name, detailsBox("#2563eb", mail), footerNote(adminEmail))

	text = fmt.Sprintf(`Hallo %s,

danke für deinen Einsatz! Du bist erfolgreich eingetragen für:

%s
Spiel: %s
Datum: %s
Uhrzeit: %s

Wir freuen uns auf deinen Einsatz! 🏆

Mit sportlichen Grüßen,
SG Ruwertal`, mail.Name, mail.Category, mail.MatchTitle, mail.Date, mail.Time)

	return subject, html, text
}

func cancellationRequestMail(mail SlotMail, dashboardURL string) (subject, html, text string) {
	subject = fmt.Sprintf("⚠️ Stornierungsanfrage: %s", mail.Name)

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #dc2626;">⚠️ Stornierungsanfrage</h1>
  <p><strong>%s</strong> möchte seinen Dienst stornieren.</p>
  %s
  <p>Bitte prüfe die Anfrage im Admin-Dashboard und entferne den Nutzer, wenn die Stornierung bestätigt ist.</p>
  <div style="margin: 30px 0; text-align: center;">
    <a href="%s" style="display: inline-block; background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: bold;">Zum Admin-Dashboard</a>
  </div>
  <p>Mit sportlichen Grüßen,<br>SG Ruwertal Dienstplanmanager</p>
</div>`, mail.Name, detailsBox("#dc2626", mail), dashboardURL)

	text = fmt.Sprintf(`⚠️ Stornierungsanfrage

%s möchte seinen Dienst stornieren.

Dienst: %s
Spiel: %s
Datum: %s

Bitte prüfe die Anfrage im Admin-Dashboard und entferne den Nutzer, wenn die Stornierung bestätigt ist.

Admin-Dashboard: %s

Mit sportlichen Grüßen,
SG Ruwertal Dienstplanmanager`, mail.Name, mail.Category, mail.MatchTitle, mail.Date, dashboardURL)

	return subject, html, text
}

func releaseMail(mail SlotMail, adminEmail string) (subject, html, text string) {
	subject = "Stornierung: Dein Dienst bei der SG Ruwertal"

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Hallo %s,</h1>
  <p>Du wurdest aus dem Dienst <strong>%s</strong> ausgetragen.</p>
  %s
  <p>Vielen Dank für dein Verständnis.</p>
  <p>Mit sportlichen Grüßen,<br>SG Ruwertal</p>
  %s
</div>`, mail.Name, mail.Category, detailsBox("#dc2626", mail), footerNote(adminEmail))

	text = fmt.Sprintf(`Hallo %s,

Du wurdest aus dem Dienst %s ausgetragen.

Spiel: %s
Datum: %s

Vielen Dank für dein Verständnis.

Mit sportlichen Grüßen,
SG Ruwertal`, mail.Name, mail.Category, mail.MatchTitle, mail.Date)

	return subject, html, text
}

func reminderMail(mail SlotMail) (subject, html, text string) {
	subject = "Erinnerung: Dein Dienst bei der SG Ruwertal ist übermorgen!"

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Hallo %s,</h1>
  <p>freundliche Erinnerung: Dein Dienst ist <strong>übermorgen</strong>!</p>
  %s
  <p>Bitte sei pünktlich vor Ort. Wir freuen uns auf deinen Einsatz! 🏆</p>
  <p>Mit sportlichen Grüßen,<br>SG Ruwertal</p>
</div>`, mail.Name, detailsBox("#f59e0b", mail))

	text = fmt.Sprintf(`Hallo %s,

freundliche Erinnerung: Dein Dienst ist übermorgen!

%s
Spiel: %s
Datum: %s (übermorgen)
Uhrzeit: %s

Bitte sei pünktlich vor Ort. Wir freuen uns auf deinen Einsatz! 🏆

Mit sportlichen Grüßen,
SG Ruwertal`, mail.Name, mail.Category, mail.MatchTitle, mail.Date, mail.Time)

	return subject, html, text
}
