package slottime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDuration(t *testing.T) {
	cases := []struct {
		timeRange string
		minutes   int
		ok        bool
	}{
		{"14:00 - 16:00", 120, true},
		{"14:00-16:00", 120, true},
		{"9:30 - 11:00", 90, true},
		{"23:00 - 01:00", 120, true}, // wraps around midnight
		{"14:00 - Ende", 120, true},
		{"ab 15:00 bis Ende", 120, true},
		{"garbage", 0, false},
		{"", 0, false},
		{"14:00", 0, false},
		{"14:00 - 14:00", 0, false},
	}

	for _, c := range cases {
		minutes, ok := DeriveDuration(c.timeRange)
		assert.Equal(t, c.ok, ok, "ok for %q", c.timeRange)
		assert.Equal(t, c.minutes, minutes, "minutes for %q", c.timeRange)
	}
}

func TestNormalizeDuration(t *testing.T) {
	minutes, ok := NormalizeDuration(90.4)
	assert.True(t, ok)
	assert.Equal(t, 90, minutes)

	_, ok = NormalizeDuration(0)
	assert.False(t, ok)

	_, ok = NormalizeDuration(-15)
	assert.False(t, ok)
}
