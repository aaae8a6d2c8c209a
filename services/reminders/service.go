// Package reminders holds the time-triggered sweep that mails every
// claimant whose duty is the day after tomorrow. The sweep is stateless: it
// derives its targets from the current store contents on every run, so a
// rerun within the same day mails the same claimants again.
package reminders

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/sgruwertal/dienst-service/pkg/matchdate"
	"github.com/sgruwertal/dienst-service/repos/postgres"
	"github.com/sgruwertal/dienst-service/repos/resend"
)

const daysAhead = 2

// Store is the slice of the persistent store the sweep needs.
type Store interface {
	ListMatches(ctx context.Context) ([]postgres.Match, error)
	ListClaimedSlots(ctx context.Context, matchID int64) ([]postgres.Slot, error)
}

// Mailer sends the reminder mails.
type Mailer interface {
	SendReminder(ctx context.Context, mail resend.SlotMail) error
}

// Result summarizes one sweep run.
type Result struct {
	MatchesDue int `json:"matches_due"`
	Sent       int `json:"sent"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type ReminderService struct {
	store  Store
	mailer Mailer
	log    *zap.Logger
	now    func() time.Time
}

func NewReminderService(store Store, mailer Mailer, log *zap.Logger) *ReminderService {
	return &ReminderService{store: store, mailer: mailer, log: log, now: time.Now}
}

// Sweep mails every claimant on matches exactly two days out. Claimants
// whose stored contact is not a mail address are counted as skipped; a
// failed delivery is counted and logged but never stops the sweep.
func (s *ReminderService) Sweep(ctx context.Context) (*Result, error) {
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, xerrors.Errorf("reminder sweep: %w", err)
	}

	now := s.now()
	target := now.AddDate(0, 0, daysAhead)
	targetDay := target.Format(matchdate.ISOLayout)

	result := &Result{}
	for _, match := range matches {
		date, ok := matchdate.ForComparison(match.MatchDate, match.Date, now)
		if !ok || date.Format(matchdate.ISOLayout) != targetDay {
			continue
		}
		result.MatchesDue++

		slots, err := s.store.ListClaimedSlots(ctx, match.ID)
		if err != nil {
			return nil, xerrors.Errorf("reminder sweep: %w", err)
		}

		for _, slot := range slots {
			if slot.UserName == nil || slot.UserContact == nil {
				continue
			}
			if !resend.IsValidEmail(*slot.UserContact) {
				result.Skipped++
				continue
			}

			mail := resend.SlotMail{
				Name:       *slot.UserName,
				Contact:    *slot.UserContact,
				Category:   slot.Category,
				MatchTitle: matchTitle(&match),
				Date:       match.Date,
				Time:       slot.Time,
				Location:   match.Location,
			}
			if err := s.mailer.SendReminder(ctx, mail); err != nil {
				result.Failed++
				s.log.Warn("reminder delivery failed",
					zap.Int64("slot_id", slot.ID),
					zap.Int64("match_id", match.ID),
					zap.Error(err))
				continue
			}
			result.Sent++
		}
	}

	s.log.Info("reminder sweep finished",
		zap.Int("matches_due", result.MatchesDue),
		zap.Int("sent", result.Sent),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}

func matchTitle(match *postgres.Match) string {
	if match.Team != nil && *match.Team != "" {
		return *match.Team + " vs. " + match.Opponent
	}
	return "Heimspiel vs. " + match.Opponent
}
