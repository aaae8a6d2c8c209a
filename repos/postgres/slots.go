package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/xerrors"
)

const slotColumns = `id, match_id, category, time, user_name, user_contact, cancellation_requested, helper_id, duration_minutes`

func scanSlot(row pgx.Row) (*Slot, error) {
	var slot Slot
	err := row.Scan(
		&slot.ID,
		&slot.MatchID,
		&slot.Category,
		&slot.Time,
		&slot.UserName,
		&slot.UserContact,
		&slot.CancellationRequested,
		&slot.HelperID,
		&slot.DurationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, xerrors.Errorf("failed to scan slot: %w", err)
	}
	return &slot, nil
}

// GetSlot reads a slot by id.
func (s *Store) GetSlot(ctx context.Context, id int64) (*Slot, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)
	return scanSlot(row)
}

// ListSlots returns all slots, or only those of one match when matchID is
// non-zero, ordered by id.
func (s *Store) ListSlots(ctx context.Context, matchID int64) ([]Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots ORDER BY id`
	args := []any{}
	if matchID != 0 {
		query = `SELECT ` + slotColumns + ` FROM slots WHERE match_id = $1 ORDER BY id`
		args = append(args, matchID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, xerrors.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	return slots, rows.Err()
}

// ListClaimedSlots returns the claimed slots of a match, the reminder
// sweep's working set.
func (s *Store) ListClaimedSlots(ctx context.Context, matchID int64) ([]Slot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+slotColumns+`
		  FROM slots
		 WHERE match_id = $1
		   AND user_name IS NOT NULL
		   AND user_contact IS NOT NULL
		 ORDER BY id`, matchID)
	if err != nil {
		return nil, xerrors.Errorf("failed to query claimed slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	return slots, rows.Err()
}

// BookSlot claims an open slot through the book_slot procedure: the open
// check and the claim happen in one round trip. A false result means the
// conditional update matched no row; the caller re-reads to find out why.
func (s *Store) BookSlot(ctx context.Context, id int64, name, contact, helperID string) (bool, error) {
	var success bool
	var slotID int64
	err := s.pool.QueryRow(ctx,
		`SELECT success, slot_id FROM book_slot($1, $2, $3, $4)`,
		id, name, contact, helperID,
	).Scan(&success, &slotID)
	if err != nil {
		return false, xerrors.Errorf("failed to call book_slot: %w", err)
	}
	return success, nil
}

// MarkCancellationRequested sets the cancellation flag, conditioned on the
// flag being clear and the contact matching the claimant. The claimant
// identity stays on the row until an admin adjudicates.
func (s *Store) MarkCancellationRequested(ctx context.Context, id int64, contact string) (bool, error) {
	var slotID int64
	err := s.pool.QueryRow(ctx, `
		UPDATE slots
		   SET cancellation_requested = TRUE
		 WHERE id = $1
		   AND cancellation_requested = FALSE
		   AND lower(user_contact) = lower($2)
		RETURNING id`, id, contact).Scan(&slotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, xerrors.Errorf("failed to mark cancellation: %w", err)
	}
	return true, nil
}

// ConfirmCancellation releases a slot whose cancellation was requested.
// Conditioned on the flag so that only the first of two concurrent admin
// sessions succeeds. helper_id is cleared with the claimant: a released
// slot must not keep feeding the contribution query.
func (s *Store) ConfirmCancellation(ctx context.Context, id int64) (bool, error) {
	var slotID int64
	err := s.pool.QueryRow(ctx, `
		UPDATE slots
		   SET user_name = NULL,
		       user_contact = NULL,
		       helper_id = NULL,
		       cancellation_requested = FALSE
		 WHERE id = $1
		   AND cancellation_requested = TRUE
		RETURNING id`, id).Scan(&slotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, xerrors.Errorf("failed to confirm cancellation: %w", err)
	}
	return true, nil
}

// RejectCancellation clears only the flag, leaving the claimant in place.
func (s *Store) RejectCancellation(ctx context.Context, id int64) (bool, error) {
	var slotID int64
	err := s.pool.QueryRow(ctx, `
		UPDATE slots
		   SET cancellation_requested = FALSE
		 WHERE id = $1
		   AND cancellation_requested = TRUE
		RETURNING id`, id).Scan(&slotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, xerrors.Errorf("failed to reject cancellation: %w", err)
	}
	return true, nil
}

// RemoveClaim forcibly releases a claimed slot, request flag or not.
func (s *Store) RemoveClaim(ctx context.Context, id int64) (bool, error) {
	var slotID int64
	err := s.pool.QueryRow(ctx, `
		UPDATE slots
		   SET user_name = NULL,
		       user_contact = NULL,
		       helper_id = NULL,
		       cancellation_requested = FALSE
		 WHERE id = $1
		   AND user_contact IS NOT NULL
		RETURNING id`, id).Scan(&slotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, xerrors.Errorf("failed to remove claim: %w", err)
	}
	return true, nil
}

// CreateSlot inserts a new open slot and fills in its id.
func (s *Store) CreateSlot(ctx context.Context, slot *Slot) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO slots (match_id, category, time, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		slot.MatchID, slot.Category, slot.Time, slot.DurationMinutes,
	).Scan(&slot.ID)
	if err != nil {
		return xerrors.Errorf("failed to insert slot: %w", err)
	}
	return nil
}

// UpdateSlot applies a partial admin edit and returns the updated row.
func (s *Store) UpdateSlot(ctx context.Context, id int64, update SlotUpdate) (*Slot, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.MatchID != nil {
		add("match_id", *update.MatchID)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.Time != nil {
		add("time", *update.Time)
	}
	if update.ClearDuration {
		sets = append(sets, "duration_minutes = NULL")
	} else if update.DurationMinutes != nil {
		add("duration_minutes", *update.DurationMinutes)
	}

	if len(sets) == 0 {
		return nil, xerrors.New("no updates given")
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE slots SET %s WHERE id = $%d RETURNING `+slotColumns,
		strings.Join(sets, ", "), len(args),
	)
	return scanSlot(s.pool.QueryRow(ctx, query, args...))
}

// DeleteSlot removes a slot by id.
func (s *Store) DeleteSlot(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return false, xerrors.Errorf("failed to delete slot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// EnsureHelper maps a normalized contact to its stable helper identity,
// creating one with the given id when the contact is new.
func (s *Store) EnsureHelper(ctx context.Context, contact, newID string) (string, error) {
	var helperID string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO helpers (id, contact)
		VALUES ($1, $2)
		ON CONFLICT (contact) DO UPDATE SET contact = EXCLUDED.contact
		RETURNING id`, newID, contact).Scan(&helperID)
	if err != nil {
		return "", xerrors.Errorf("failed to upsert helper: %w", err)
	}
	return helperID, nil
}

// ListContributions returns every claimed slot with a helper identity and a
// known duration, joined with its match dates.
func (s *Store) ListContributions(ctx context.Context) ([]Contribution, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.helper_id, s.duration_minutes,
		       COALESCE(to_char(m.match_date, 'YYYY-MM-DD'), ''), m.date
		  FROM slots s
		  JOIN matches m ON m.id = s.match_id
		 WHERE s.helper_id IS NOT NULL
		   AND s.cancellation_requested = FALSE
		   AND s.duration_minutes > 0`)
	if err != nil {
		return nil, xerrors.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	var contributions []Contribution
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.HelperID, &c.DurationMinutes, &c.MatchDate, &c.DisplayDate); err != nil {
			return nil, xerrors.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}
