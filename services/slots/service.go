// Package slots holds the slot lifecycle: Open -> Claimed ->
// CancellationRequested -> (Open | Claimed), plus the forced admin release.
// Every transition expresses its precondition inside the store write itself;
// the service never checks first and writes second, because that would
// reopen the race the conditional write closes.
package slots

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/sgruwertal/dienst-service/pkg/helperid"
	"github.com/sgruwertal/dienst-service/pkg/matchdate"
	"github.com/sgruwertal/dienst-service/pkg/slottime"
	"github.com/sgruwertal/dienst-service/repos/postgres"
	"github.com/sgruwertal/dienst-service/repos/resend"
	"github.com/sgruwertal/dienst-service/services/notify"
)

// Store is the slice of the persistent store the lifecycle needs. A false
// first return from the conditional writes means the predicate matched no
// row; the service re-reads and reclassifies, it never errors on that alone.
type Store interface {
	GetSlot(ctx context.Context, id int64) (*postgres.Slot, error)
	GetMatch(ctx context.Context, id int64) (*postgres.Match, error)
	BookSlot(ctx context.Context, id int64, name, contact, helperID string) (bool, error)
	MarkCancellationRequested(ctx context.Context, id int64, contact string) (bool, error)
	ConfirmCancellation(ctx context.Context, id int64) (bool, error)
	RejectCancellation(ctx context.Context, id int64) (bool, error)
	RemoveClaim(ctx context.Context, id int64) (bool, error)
	EnsureHelper(ctx context.Context, contact, newID string) (string, error)
	ListSlots(ctx context.Context, matchID int64) ([]postgres.Slot, error)
	CreateSlot(ctx context.Context, slot *postgres.Slot) error
	UpdateSlot(ctx context.Context, id int64, update postgres.SlotUpdate) (*postgres.Slot, error)
	DeleteSlot(ctx context.Context, id int64) (bool, error)
}

// Publisher enqueues post-commit notification events.
type Publisher interface {
	Publish(event notify.StateChanged) bool
}

type SlotService struct {
	store     Store
	publisher Publisher
	log       *zap.Logger
	validate  *validator.Validate
}

func NewSlotService(store Store, publisher Publisher, log *zap.Logger) *SlotService {
	return &SlotService{
		store:     store,
		publisher: publisher,
		log:       log,
		validate:  validator.New(),
	}
}

// Claim attaches a claimant to an open slot. The open check happens inside
// the store's book_slot procedure; when it reports no row hit, the slot is
// re-read to tell apart an idempotent resubmission, a transient miss worth
// one retry, and a genuine conflict.
func (s *SlotService) Claim(ctx context.Context, slotID int64, request ClaimRequest) (*ClaimResult, error) {
	name := strings.TrimSpace(request.Name)
	if len([]rune(name)) < 2 {
		return nil, validationError("Name muss mindestens 2 Zeichen lang sein")
	}
	contact := strings.TrimSpace(request.Email)
	if err := s.validate.Var(contact, "required,email"); err != nil {
		return nil, validationError("Bitte eine gültige E-Mail-Adresse angeben")
	}

	helperID, err := s.store.EnsureHelper(ctx, helperid.NormalizeContact(contact), helperid.New())
	if err != nil {
		return nil, xerrors.Errorf("claim slot %d: %w", slotID, err)
	}

	booked, err := s.store.BookSlot(ctx, slotID, name, contact, helperID)
	if err != nil {
		return nil, xerrors.Errorf("claim slot %d: %w", slotID, err)
	}

	if !booked {
		slot, err := s.store.GetSlot(ctx, slotID)
		if err != nil {
			if xerrors.Is(err, postgres.ErrNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, xerrors.Errorf("claim slot %d: %w", slotID, err)
		}

		switch {
		case slot.UserContact != nil && strings.EqualFold(*slot.UserContact, contact):
			// Double-submitted claim by the same contact. Success, but no
			// second confirmation mail.
			return &ClaimResult{Slot: slot.Public()}, nil
		case slot.IsOpen() && !slot.CancellationRequested:
			// The row looked bookable after all; retry the conditional
			// write exactly once.
			booked, err = s.store.BookSlot(ctx, slotID, name, contact, helperID)
			if err != nil {
				return nil, xerrors.Errorf("claim slot %d: %w", slotID, err)
			}
			if !booked {
				return nil, ErrSlotTaken
			}
		default:
			return nil, ErrSlotTaken
		}
	}

	result := &ClaimResult{}
	slot, match, err := s.slotWithMatch(ctx, slotID)
	if err != nil {
		// The claim is committed; losing the mail data only costs the
		// confirmation.
		s.log.Warn("claimed slot could not be re-read for notification",
			zap.Int64("slot_id", slotID), zap.Error(err))
		return result, nil
	}
	result.Slot = slot.Public()
	result.NotificationQueued = s.publisher.Publish(notify.StateChanged{
		Kind:   notify.KindClaimConfirmed,
		SlotID: slotID,
		Mail:   mailData(slot, match, name, contact),
	})
	return result, nil
}

// RequestCancellation flags a claimed slot for release. Only the original
// claimant can request it: the conditional write matches on the persisted
// contact, case-insensitively. The claimant identity stays on the row until
// an admin adjudicates.
func (s *SlotService) RequestCancellation(ctx context.Context, slotID int64, request CancellationRequest) (*ClaimResult, error) {
	contact := strings.TrimSpace(request.Email)
	if err := s.validate.Var(contact, "required,email"); err != nil {
		return nil, validationError("Bitte eine gültige E-Mail-Adresse angeben")
	}

	marked, err := s.store.MarkCancellationRequested(ctx, slotID, contact)
	if err != nil {
		return nil, xerrors.Errorf("request cancellation for slot %d: %w", slotID, err)
	}

	if !marked {
		slot, err := s.store.GetSlot(ctx, slotID)
		if err != nil {
			if xerrors.Is(err, postgres.ErrNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, xerrors.Errorf("request cancellation for slot %d: %w", slotID, err)
		}
		switch {
		case !slot.IsClaimed():
			return nil, ErrNotClaimed
		case !strings.EqualFold(*slot.UserContact, contact):
			return nil, ErrWrongContact
		default:
			return nil, ErrAlreadyRequested
		}
	}

	result := &ClaimResult{}
	slot, match, err := s.slotWithMatch(ctx, slotID)
	if err != nil {
		s.log.Warn("flagged slot could not be re-read for notification",
			zap.Int64("slot_id", slotID), zap.Error(err))
		return result, nil
	}
	result.Slot = slot.Public()

	name := ""
	if slot.UserName != nil {
		name = *slot.UserName
	}
	result.NotificationQueued = s.publisher.Publish(notify.StateChanged{
		Kind:   notify.KindCancellationRequested,
		SlotID: slotID,
		Mail:   mailData(slot, match, name, contact),
	})
	return result, nil
}

// ConfirmCancellation releases a flagged slot. The claimant snapshot is
// captured before the clearing write because the data is gone afterwards;
// the write itself is conditioned on the flag, so of two concurrent admin
// sessions only the first succeeds and the second reports already handled.
func (s *SlotService) ConfirmCancellation(ctx context.Context, slotID int64) (*ClaimResult, error) {
	snapshot, match, err := s.claimantSnapshot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.store.ConfirmCancellation(ctx, slotID)
	if err != nil {
		return nil, xerrors.Errorf("confirm cancellation for slot %d: %w", slotID, err)
	}
	if !confirmed {
		return nil, ErrAlreadyHandled
	}

	return s.releaseResult(ctx, slotID, snapshot, match), nil
}

// RejectCancellation keeps the claimant and clears only the flag. Same
// concurrency shape as ConfirmCancellation.
func (s *SlotService) RejectCancellation(ctx context.Context, slotID int64) (*ClaimResult, error) {
	if _, err := s.store.GetSlot(ctx, slotID); err != nil {
		if xerrors.Is(err, postgres.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, xerrors.Errorf("reject cancellation for slot %d: %w", slotID, err)
	}

	rejected, err := s.store.RejectCancellation(ctx, slotID)
	if err != nil {
		return nil, xerrors.Errorf("reject cancellation for slot %d: %w", slotID, err)
	}
	if !rejected {
		return nil, ErrAlreadyHandled
	}

	result := &ClaimResult{}
	if slot, err := s.store.GetSlot(ctx, slotID); err == nil {
		result.Slot = slot.Public()
	}
	return result, nil
}

// ForceRemove releases a claimed slot without a pending request, the admin
// override outside the normal flow. Of two concurrent removals only one
// clears the row; the other finds it already open.
func (s *SlotService) ForceRemove(ctx context.Context, slotID int64) (*ClaimResult, error) {
	snapshot, match, err := s.claimantSnapshot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	removed, err := s.store.RemoveClaim(ctx, slotID)
	if err != nil {
		return nil, xerrors.Errorf("remove claim from slot %d: %w", slotID, err)
	}
	if !removed {
		return nil, ErrNotClaimed
	}

	return s.releaseResult(ctx, slotID, snapshot, match), nil
}

// List returns slots for the admin dashboard, optionally limited to one
// match.
func (s *SlotService) List(ctx context.Context, matchID int64) ([]postgres.Slot, error) {
	slots, err := s.store.ListSlots(ctx, matchID)
	if err != nil {
		return nil, xerrors.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Create inserts open slots on a match. The duration comes from the request
// when given, otherwise it is derived from the time descriptor; a
// descriptor that cannot be parsed leaves the duration unknown and never
// blocks creation.
func (s *SlotService) Create(ctx context.Context, request CreateSlotsRequest) ([]postgres.Slot, error) {
	category := strings.TrimSpace(request.Category)
	timeRange := strings.TrimSpace(request.Time)
	if request.MatchID == 0 || category == "" || timeRange == "" {
		return nil, validationError("Pflichtfelder fehlen")
	}

	if _, err := s.store.GetMatch(ctx, request.MatchID); err != nil {
		if xerrors.Is(err, postgres.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, xerrors.Errorf("create slots: %w", err)
	}

	var duration *int
	if request.DurationMinutes != nil {
		minutes, ok := slottime.NormalizeDuration(*request.DurationMinutes)
		if !ok {
			return nil, validationError("Dauer muss > 0 sein")
		}
		duration = &minutes
	} else if minutes, ok := slottime.DeriveDuration(timeRange); ok {
		duration = &minutes
	}

	count := request.Count
	if count <= 0 {
		count = 1
	}

	created := make([]postgres.Slot, 0, count)
	for i := 0; i < count; i++ {
		slot := postgres.Slot{
			MatchID:         request.MatchID,
			Category:        category,
			Time:            timeRange,
			DurationMinutes: duration,
		}
		if err := s.store.CreateSlot(ctx, &slot); err != nil {
			return nil, xerrors.Errorf("create slots: %w", err)
		}
		created = append(created, slot)
	}
	return created, nil
}

// Update applies a partial admin edit to a slot.
func (s *SlotService) Update(ctx context.Context, slotID int64, request UpdateSlotRequest) (*postgres.Slot, error) {
	update := postgres.SlotUpdate{MatchID: request.MatchID}

	if request.MatchID != nil && *request.MatchID == 0 {
		return nil, validationError("match_id ungültig")
	}
	if request.Category != nil {
		category := strings.TrimSpace(*request.Category)
		if category == "" {
			return nil, validationError("category ungültig")
		}
		update.Category = &category
	}
	if request.Time != nil {
		timeRange := strings.TrimSpace(*request.Time)
		if timeRange == "" {
			return nil, validationError("time ungültig")
		}
		update.Time = &timeRange
	}
	if request.DurationProvided {
		if request.DurationMinutes == nil {
			update.ClearDuration = true
		} else {
			minutes, ok := slottime.NormalizeDuration(*request.DurationMinutes)
			if !ok {
				return nil, validationError("Dauer muss > 0 sein")
			}
			update.DurationMinutes = &minutes
		}
	}

	if update.MatchID == nil && update.Category == nil && update.Time == nil &&
		update.DurationMinutes == nil && !update.ClearDuration {
		return nil, validationError("Keine Updates vorhanden")
	}

	slot, err := s.store.UpdateSlot(ctx, slotID, update)
	if err != nil {
		if xerrors.Is(err, postgres.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, xerrors.Errorf("update slot %d: %w", slotID, err)
	}
	return slot, nil
}

// Delete removes a slot entirely.
func (s *SlotService) Delete(ctx context.Context, slotID int64) error {
	deleted, err := s.store.DeleteSlot(ctx, slotID)
	if err != nil {
		return xerrors.Errorf("delete slot %d: %w", slotID, err)
	}
	if !deleted {
		return ErrSlotNotFound
	}
	return nil
}

// claimantSnapshot reads the slot and its match before a clearing write.
// Only the conditional write decides the transition; the snapshot solely
// feeds the notification afterwards.
func (s *SlotService) claimantSnapshot(ctx context.Context, slotID int64) (*postgres.Slot, *postgres.Match, error) {
	slot, match, err := s.slotWithMatch(ctx, slotID)
	if err != nil {
		if xerrors.Is(err, postgres.ErrNotFound) {
			return nil, nil, ErrSlotNotFound
		}
		return nil, nil, xerrors.Errorf("read slot %d: %w", slotID, err)
	}
	return slot, match, nil
}

func (s *SlotService) releaseResult(ctx context.Context, slotID int64, snapshot *postgres.Slot, match *postgres.Match) *ClaimResult {
	result := &ClaimResult{}
	if slot, err := s.store.GetSlot(ctx, slotID); err == nil {
		result.Slot = slot.Public()
	}

	if snapshot.UserName == nil || snapshot.UserContact == nil {
		return result
	}
	if !resend.IsValidEmail(*snapshot.UserContact) {
		return result
	}

	result.NotificationQueued = s.publisher.Publish(notify.StateChanged{
		Kind:   notify.KindClaimReleased,
		SlotID: slotID,
		Mail:   mailData(snapshot, match, *snapshot.UserName, *snapshot.UserContact),
	})
	return result
}

func (s *SlotService) slotWithMatch(ctx context.Context, slotID int64) (*postgres.Slot, *postgres.Match, error) {
	slot, err := s.store.GetSlot(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	match, err := s.store.GetMatch(ctx, slot.MatchID)
	if err != nil {
		return nil, nil, err
	}
	return slot, match, nil
}

func mailData(slot *postgres.Slot, match *postgres.Match, name, contact string) resend.SlotMail {
	return resend.SlotMail{
		Name:       name,
		Contact:    contact,
		Category:   slot.Category,
		MatchTitle: matchTitle(match),
		Date:       displayDate(match),
		Time:       slot.Time,
		Location:   match.Location,
	}
}

func matchTitle(match *postgres.Match) string {
	if match.Team != nil && *match.Team != "" {
		return fmt.Sprintf("%s vs. %s", *match.Team, match.Opponent)
	}
	return fmt.Sprintf("Heimspiel vs. %s", match.Opponent)
}

func displayDate(match *postgres.Match) string {
	if match.Date != "" {
		return match.Date
	}
	if parsed, err := time.Parse(matchdate.ISOLayout, match.MatchDate); err == nil {
		return matchdate.FormatDisplay(parsed)
	}
	return match.MatchDate
}
