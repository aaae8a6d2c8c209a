// Package leaderboard aggregates claimed slots into a per-helper ranking.
// One point per full 10 minutes of duty; identities are the opaque helper
// IDs, never names or contacts.
package leaderboard

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/sgruwertal/dienst-service/pkg/matchdate"
	"github.com/sgruwertal/dienst-service/repos/postgres"
)

const defaultLimit = 10

// Store is the slice of the persistent store the ranking needs.
type Store interface {
	ListContributions(ctx context.Context) ([]postgres.Contribution, error)
}

// Entry is one row of the ranking.
type Entry struct {
	HelperID string `json:"helper_id"`
	Points   int    `json:"points"`
	Minutes  int    `json:"minutes"`
	Slots    int    `json:"slots"`
}

// Query filters and sizes the ranking. Year zero means all years; Limit
// zero means the default of ten.
type Query struct {
	Year  int
	Limit int
}

type LeaderboardService struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewLeaderboardService(store Store, log *zap.Logger) *LeaderboardService {
	return &LeaderboardService{store: store, log: log, now: time.Now}
}

// Compute builds the ranking. Contributions whose match date cannot be
// resolved are skipped when a year filter is set, not guessed into a year.
func (s *LeaderboardService) Compute(ctx context.Context, query Query) ([]Entry, error) {
	contributions, err := s.store.ListContributions(ctx)
	if err != nil {
		return nil, xerrors.Errorf("compute leaderboard: %w", err)
	}

	totals := map[string]*Entry{}
	for _, contribution := range contributions {
		if query.Year != 0 {
			date, ok := matchdate.ForComparison(contribution.MatchDate, contribution.DisplayDate, s.now())
			if !ok || date.Year() != query.Year {
				continue
			}
		}

		entry, ok := totals[contribution.HelperID]
		if !ok {
			entry = &Entry{HelperID: contribution.HelperID}
			totals[contribution.HelperID] = entry
		}
		entry.Minutes += contribution.DurationMinutes
		entry.Points += contribution.DurationMinutes / 10
		entry.Slots++
	}

	entries := make([]Entry, 0, len(totals))
	for _, entry := range totals {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].Minutes != entries[j].Minutes {
			return entries[i].Minutes > entries[j].Minutes
		}
		return entries[i].HelperID < entries[j].HelperID
	})

	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
