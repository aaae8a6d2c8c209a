package resend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testMail = SlotMail{
	Name:       "Anna Beispiel",
	Contact:    "anna@example.com",
	Category:   "Theke",
	MatchTitle: "1. Mannschaft vs. SV Trier",
	Date:       "Sa, 06.12.",
	Time:       "14:00 - 16:00",
	Location:   "Sportplatz Kasel",
}

func TestConfirmationMail(t *testing.T) {
	subject, html, text := confirmationMail(testMail, "admin@sgruwertal.de")

	assert.Contains(t, subject, "Bestätigung")
	assert.Contains(t, html, "Anna Beispiel")
	assert.Contains(t, html, "Theke")
	assert.Contains(t, html, "Sportplatz Kasel")
	assert.Contains(t, html, "admin@sgruwertal.de")
	assert.Contains(t, text, "Sa, 06.12.")
}

func TestCancellationRequestMail(t *testing.T) {
	subject, html, text := cancellationRequestMail(testMail, "https://dienste.sgruwertal.de/admin")

	assert.Contains(t, subject, "Anna Beispiel")
	assert.Contains(t, html, "Stornierungsanfrage")
	assert.Contains(t, html, "https://dienste.sgruwertal.de/admin")
	assert.Contains(t, text, "möchte seinen Dienst stornieren")
}

func TestReleaseMail(t *testing.T) {
	subject, html, text := releaseMail(testMail, "")

	assert.Contains(t, subject, "Stornierung")
	assert.Contains(t, html, "ausgetragen")
	// Fallback wording when no admin address is configured.
	assert.Contains(t, html, "den Administratoren")
	assert.Contains(t, text, "Vielen Dank für dein Verständnis.")
}

func TestReminderMail(t *testing.T) {
	subject, html, text := reminderMail(testMail)

	assert.Contains(t, subject, "übermorgen")
	assert.Contains(t, html, "pünktlich")
	assert.Contains(t, text, "14:00 - 16:00")
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("anna@example.com"))
	assert.False(t, IsValidEmail("Anna (Telefon 0651/12345)"))
	assert.False(t, IsValidEmail("anna@"))
	assert.False(t, IsValidEmail(""))
}
