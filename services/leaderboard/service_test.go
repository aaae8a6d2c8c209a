package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgruwertal/dienst-service/repos/postgres"
)

type fakeStore struct {
	contributions []postgres.Contribution
}

func (f *fakeStore) ListContributions(_ context.Context) ([]postgres.Contribution, error) {
	return f.contributions, nil
}

func newTestService(contributions []postgres.Contribution) *LeaderboardService {
	service := NewLeaderboardService(&fakeStore{contributions: contributions}, zap.NewNop())
	service.now = func() time.Time {
		return time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestComputeAggregatesPerHelper(t *testing.T) {
	service := newTestService([]postgres.Contribution{
		{HelperID: "a", DurationMinutes: 120, MatchDate: "2025-12-06"},
		{HelperID: "a", DurationMinutes: 90, MatchDate: "2025-11-15"},
		{HelperID: "b", DurationMinutes: 120, MatchDate: "2025-12-06"},
	})

	entries, err := service.Compute(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a", entries[0].HelperID)
	assert.Equal(t, 210, entries[0].Minutes)
	assert.Equal(t, 21, entries[0].Points)
	assert.Equal(t, 2, entries[0].Slots)

	assert.Equal(t, "b", entries[1].HelperID)
	assert.Equal(t, 12, entries[1].Points)
}

func TestComputeTieBreaksByMinutesThenID(t *testing.T) {
	service := newTestService([]postgres.Contribution{
		// 95 and 90 minutes are both 9 points.
		{HelperID: "z", DurationMinutes: 95, MatchDate: "2025-12-06"},
		{HelperID: "a", DurationMinutes: 90, MatchDate: "2025-12-06"},
		{HelperID: "m", DurationMinutes: 90, MatchDate: "2025-12-06"},
	})

	entries, err := service.Compute(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "z", entries[0].HelperID)
	assert.Equal(t, "a", entries[1].HelperID)
	assert.Equal(t, "m", entries[2].HelperID)
}

func TestComputeYearFilter(t *testing.T) {
	service := newTestService([]postgres.Contribution{
		{HelperID: "a", DurationMinutes: 120, MatchDate: "2025-12-06"},
		{HelperID: "a", DurationMinutes: 120, MatchDate: "2024-03-09"},
		// No resolvable date: skipped under a year filter.
		{HelperID: "a", DurationMinutes: 120},
	})

	entries, err := service.Compute(context.Background(), Query{Year: 2025})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 120, entries[0].Minutes)
}

func TestComputeYearFilterFallsBackToDisplayDate(t *testing.T) {
	service := newTestService([]postgres.Contribution{
		{HelperID: "a", DurationMinutes: 60, DisplayDate: "Sa, 06.12."},
	})

	entries, err := service.Compute(context.Background(), Query{Year: 2025})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestComputeLimit(t *testing.T) {
	var contributions []postgres.Contribution
	for _, id := range []string{"a", "b", "c"} {
		contributions = append(contributions, postgres.Contribution{
			HelperID: id, DurationMinutes: 60, MatchDate: "2025-12-06",
		})
	}
	service := newTestService(contributions)

	entries, err := service.Compute(context.Background(), Query{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
