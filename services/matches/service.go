// Package matches exposes the fixture plan: the public read side members
// browse before signing up, and the admin CRUD behind it.
package matches

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/sgruwertal/dienst-service/pkg/matchdate"
	"github.com/sgruwertal/dienst-service/repos/postgres"
)

// Store is the slice of the persistent store the fixture plan needs.
type Store interface {
	GetMatch(ctx context.Context, id int64) (*postgres.Match, error)
	ListMatches(ctx context.Context) ([]postgres.Match, error)
	CreateMatch(ctx context.Context, match *postgres.Match) error
	UpdateMatch(ctx context.Context, id int64, update postgres.MatchUpdate) (*postgres.Match, error)
	DeleteMatch(ctx context.Context, id int64) (bool, error)
	ListSlots(ctx context.Context, matchID int64) ([]postgres.Slot, error)
}

type MatchService struct {
	store Store
	log   *zap.Logger
}

func NewMatchService(store Store, log *zap.Logger) *MatchService {
	return &MatchService{store: store, log: log}
}

// ListPublic returns all fixtures with their slots, contacts stripped. This
// is the plan page payload.
func (s *MatchService) ListPublic(ctx context.Context) ([]MatchWithSlots, error) {
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, xerrors.Errorf("list matches: %w", err)
	}

	out := make([]MatchWithSlots, 0, len(matches))
	for _, match := range matches {
		matchSlots, err := s.store.ListSlots(ctx, match.ID)
		if err != nil {
			return nil, xerrors.Errorf("list slots for match %d: %w", match.ID, err)
		}
		public := make([]postgres.SlotPublic, 0, len(matchSlots))
		for i := range matchSlots {
			public = append(public, matchSlots[i].Public())
		}
		out = append(out, MatchWithSlots{Match: match, Slots: public})
	}
	return out, nil
}

// GetPublic returns one fixture with its public slots.
func (s *MatchService) GetPublic(ctx context.Context, id int64) (*MatchWithSlots, error) {
	match, err := s.store.GetMatch(ctx, id)
	if err != nil {
		if xerrors.Is(err, postgres.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, xerrors.Errorf("get match %d: %w", id, err)
	}

	matchSlots, err := s.store.ListSlots(ctx, id)
	if err != nil {
		return nil, xerrors.Errorf("list slots for match %d: %w", id, err)
	}
	public := make([]postgres.SlotPublic, 0, len(matchSlots))
	for i := range matchSlots {
		public = append(public, matchSlots[i].Public())
	}
	return &MatchWithSlots{Match: *match, Slots: public}, nil
}

// List returns the raw fixtures for the admin dashboard.
func (s *MatchService) List(ctx context.Context) ([]postgres.Match, error) {
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, xerrors.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// Create inserts a fixture. A missing display date is derived from the
// calendar date, and a missing calendar date guessed from the display form;
// neither derivation failing blocks creation.
func (s *MatchService) Create(ctx context.Context, request CreateMatchRequest) (*postgres.Match, error) {
	opponent := strings.TrimSpace(request.Opponent)
	if opponent == "" {
		return nil, validationError("Gegner fehlt")
	}

	display := strings.TrimSpace(request.Date)
	calendar := strings.TrimSpace(request.MatchDate)
	if display == "" && calendar == "" {
		return nil, validationError("Datum fehlt")
	}
	if calendar != "" {
		if _, err := time.Parse(matchdate.ISOLayout, calendar); err != nil {
			return nil, validationError("match_date muss YYYY-MM-DD sein")
		}
		if display == "" {
			parsed, _ := time.Parse(matchdate.ISOLayout, calendar)
			display = matchdate.FormatDisplay(parsed)
		}
	} else if parsed, ok := matchdate.ParseDisplay(display, time.Now()); ok {
		calendar = parsed.Format(matchdate.ISOLayout)
	}

	match := postgres.Match{
		Opponent:  opponent,
		Date:      display,
		MatchDate: calendar,
		Time:      strings.TrimSpace(request.Time),
		Location:  strings.TrimSpace(request.Location),
		Team:      request.Team,
	}
	if err := s.store.CreateMatch(ctx, &match); err != nil {
		return nil, xerrors.Errorf("create match: %w", err)
	}
	return &match, nil
}

// Update applies a partial admin edit to a fixture.
func (s *MatchService) Update(ctx context.Context, id int64, request UpdateMatchRequest) (*postgres.Match, error) {
	update := postgres.MatchUpdate{
		Date: request.Date,
		Time: request.Time,
	}

	if request.Opponent != nil {
		opponent := strings.TrimSpace(*request.Opponent)
		if opponent == "" {
			return nil, validationError("Gegner darf nicht leer sein")
		}
		update.Opponent = &opponent
	}
	if request.MatchDate != nil {
		calendar := strings.TrimSpace(*request.MatchDate)
		if calendar != "" {
			if _, err := time.Parse(matchdate.ISOLayout, calendar); err != nil {
				return nil, validationError("match_date muss YYYY-MM-DD sein")
			}
		}
		update.MatchDate = &calendar
	}
	if request.Location != nil {
		update.Location = request.Location
	}
	if request.TeamProvided {
		if request.Team == nil {
			update.ClearTeam = true
		} else {
			update.Team = request.Team
		}
	}

	if update.Opponent == nil && update.Date == nil && update.MatchDate == nil &&
		update.Time == nil && update.Location == nil && update.Team == nil && !update.ClearTeam {
		return nil, validationError("Keine Updates vorhanden")
	}

	match, err := s.store.UpdateMatch(ctx, id, update)
	if err != nil {
		if xerrors.Is(err, postgres.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, xerrors.Errorf("update match %d: %w", id, err)
	}
	return match, nil
}

// Delete removes a fixture and all its slots, claimed or not. No mails go
// out; removing a match is an announcement-level event, not a slot-level
// one.
func (s *MatchService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteMatch(ctx, id)
	if err != nil {
		return xerrors.Errorf("delete match %d: %w", id, err)
	}
	if !deleted {
		return ErrMatchNotFound
	}
	s.log.Info("match deleted with its slots", zap.Int64("match_id", id))
	return nil
}
