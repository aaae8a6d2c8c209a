package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
	"go.uber.org/zap"

	"github.com/sgruwertal/dienst-service/repos/postgres"
	"github.com/sgruwertal/dienst-service/repos/resend"
)

type fakeStore struct {
	matches []postgres.Match
	slots   map[int64][]postgres.Slot
}

func (f *fakeStore) ListMatches(_ context.Context) ([]postgres.Match, error) {
	return f.matches, nil
}

func (f *fakeStore) ListClaimedSlots(_ context.Context, matchID int64) ([]postgres.Slot, error) {
	return f.slots[matchID], nil
}

type fakeMailer struct {
	sent     []resend.SlotMail
	failFor  string
	failWith error
}

func (f *fakeMailer) SendReminder(_ context.Context, mail resend.SlotMail) error {
	if f.failFor != "" && mail.Contact == f.failFor {
		return f.failWith
	}
	f.sent = append(f.sent, mail)
	return nil
}

func newTestService(store *fakeStore, mailer *fakeMailer) *ReminderService {
	service := NewReminderService(store, mailer, zap.NewNop())
	service.now = func() time.Time {
		return time.Date(2025, time.December, 4, 6, 0, 0, 0, time.UTC)
	}
	return service
}

func claimed(id int64, name, contact string) postgres.Slot {
	return postgres.Slot{
		ID:          id,
		MatchID:     1,
		Category:    "Theke",
		Time:        "14:00 - 16:00",
		UserName:    pointer.String(name),
		UserContact: pointer.String(contact),
	}
}

func TestSweepMailsClaimantsTwoDaysOut(t *testing.T) {
	store := &fakeStore{
		matches: []postgres.Match{
			{ID: 1, Opponent: "TuS Mosella", Date: "Sa, 06.12.", MatchDate: "2025-12-06", Location: "Sporthalle Waldrach"},
			{ID: 2, Opponent: "SV Trier", Date: "So, 07.12.", MatchDate: "2025-12-07"},
		},
		slots: map[int64][]postgres.Slot{
			1: {claimed(5, "Anna Becker", "anna@example.com"), claimed(6, "Bernd Keller", "bernd@example.com")},
			2: {claimed(7, "Carla Duron", "carla@example.com")},
		},
	}
	mailer := &fakeMailer{}
	service := newTestService(store, mailer)

	result, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchesDue)
	assert.Equal(t, 2, result.Sent)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "anna@example.com", mailer.sent[0].Contact)
	assert.Equal(t, "Heimspiel vs. TuS Mosella", mailer.sent[0].MatchTitle)
}

func TestSweepFallsBackToDisplayDate(t *testing.T) {
	store := &fakeStore{
		// Row created before the calendar column existed.
		matches: []postgres.Match{{ID: 1, Opponent: "TuS Mosella", Date: "Sa, 06.12."}},
		slots: map[int64][]postgres.Slot{
			1: {claimed(5, "Anna Becker", "anna@example.com")},
		},
	}
	mailer := &fakeMailer{}
	service := newTestService(store, mailer)

	result, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

func TestSweepSkipsInvalidContacts(t *testing.T) {
	store := &fakeStore{
		matches: []postgres.Match{{ID: 1, Opponent: "TuS Mosella", MatchDate: "2025-12-06", Date: "Sa, 06.12."}},
		slots: map[int64][]postgres.Slot{
			1: {claimed(5, "Anna Becker", "Anna (Halle)"), claimed(6, "Bernd Keller", "bernd@example.com")},
		},
	}
	mailer := &fakeMailer{}
	service := newTestService(store, mailer)

	result, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Skipped)
}

func TestSweepContinuesPastDeliveryFailure(t *testing.T) {
	store := &fakeStore{
		matches: []postgres.Match{{ID: 1, Opponent: "TuS Mosella", MatchDate: "2025-12-06", Date: "Sa, 06.12."}},
		slots: map[int64][]postgres.Slot{
			1: {claimed(5, "Anna Becker", "anna@example.com"), claimed(6, "Bernd Keller", "bernd@example.com")},
		},
	}
	mailer := &fakeMailer{failFor: "anna@example.com", failWith: errors.New("rate limited")}
	service := newTestService(store, mailer)

	result, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
}

func TestSweepNoMatchesDue(t *testing.T) {
	store := &fakeStore{
		matches: []postgres.Match{{ID: 1, Opponent: "TuS Mosella", MatchDate: "2025-12-20", Date: "Sa, 20.12."}},
	}
	mailer := &fakeMailer{}
	service := newTestService(store, mailer)

	result, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.MatchesDue)
	assert.Empty(t, mailer.sent)
}
