// Package resend sends the club's notification mails. Delivery is
// best-effort throughout: a failed send never rolls back the slot state
// change it accompanies.
package resend

import (
	"context"
	"regexp"

	resend "github.com/resend/resend-go/v2"
	"golang.org/x/xerrors"
)

// Service wraps the Resend client.
type Service struct {
	client     *resend.Client
	from       string
	adminEmail string
	publicURL  string
}

// NewService creates a new mail service.
func NewService(apiKey, from, adminEmail, publicURL string) *Service {
	return &Service{
		client:     resend.NewClient(apiKey),
		from:       from,
		adminEmail: adminEmail,
		publicURL:  publicURL,
	}
}

func (s *Service) send(ctx context.Context, to, subject, html, text string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return xerrors.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendConfirmation mails a claimant that their sign-up went through.
func (s *Service) SendConfirmation(ctx context.Context, mail SlotMail) error {
	subject, html, text := confirmationMail(mail, s.adminEmail)
	return s.send(ctx, mail.Contact, subject, html, text)
}

// SendCancellationRequested notifies the admin channel about a pending
// cancellation request. Without a configured admin address it is a no-op.
func (s *Service) SendCancellationRequested(ctx context.Context, mail SlotMail) error {
	if s.adminEmail == "" {
		return nil
	}
	subject, html, text := cancellationRequestMail(mail, s.adminDashboardURL())
	return s.send(ctx, s.adminEmail, subject, html, text)
}

// SendReleased mails a former claimant that they were taken off the duty,
// either by a confirmed cancellation or an admin override.
func (s *Service) SendReleased(ctx context.Context, mail SlotMail) error {
	subject, html, text := releaseMail(mail, s.adminEmail)
	return s.send(ctx, mail.Contact, subject, html, text)
}

// SendReminder mails a claimant two days ahead of their duty.
func (s *Service) SendReminder(ctx context.Context, mail SlotMail) error {
	subject, html, text := reminderMail(mail)
	return s.send(ctx, mail.Contact, subject, html, text)
}

func (s *Service) adminDashboardURL() string {
	if s.publicURL == "" {
		return "/admin"
	}
	return s.publicURL + "/admin"
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether a contact looks like a deliverable address.
// Old rows may carry free-text contacts; those are skipped, not errors.
func IsValidEmail(contact string) bool {
	return emailPattern.MatchString(contact)
}
