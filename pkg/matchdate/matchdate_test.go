package matchdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDisplay(t *testing.T) {
	now := date(2025, time.December, 1)

	parsed, ok := ParseDisplay("Sa, 06.12.", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 6), parsed)

	// Without the weekday prefix.
	parsed, ok = ParseDisplay("06.12.", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 6), parsed)

	_, ok = ParseDisplay("kein Datum", now)
	assert.False(t, ok)
}

func TestParseDisplayYearGuess(t *testing.T) {
	// In December a January date means next year.
	now := date(2025, time.December, 20)
	parsed, ok := ParseDisplay("Sa, 10.01.", now)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.January, 10), parsed)

	// In January a December date means last year.
	now = date(2026, time.January, 5)
	parsed, ok = ParseDisplay("Sa, 20.12.", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 20), parsed)
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "Sa, 06.12.", FormatDisplay(date(2025, time.December, 6)))
	assert.Equal(t, "So, 07.12.", FormatDisplay(date(2025, time.December, 7)))
}

func TestForComparison(t *testing.T) {
	now := date(2025, time.December, 1)

	// Calendar column wins.
	parsed, ok := ForComparison("2025-12-06", "Fr, 05.12.", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 6), parsed)

	// Fallback to the display string.
	parsed, ok = ForComparison("", "Fr, 05.12.", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 5), parsed)

	_, ok = ForComparison("not-a-date", "garbage", now)
	assert.False(t, ok)
}
