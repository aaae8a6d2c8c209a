// Package slottime derives a duty duration in minutes from the free-text
// time descriptor of a slot, e.g. "14:00 - 16:00" or "13:30 - Ende".
package slottime

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// EndeDuration is assumed when the descriptor ends with the literal
// "Ende" instead of a second clock time.
const EndeDuration = 120

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// DeriveDuration parses two HH:MM tokens out of a free-text range and
// returns the difference in minutes, wrapping around midnight when the
// range crosses it. The second return is false when no duration can be
// derived; callers must treat that as "duration unknown", never as an
// error that blocks slot creation.
func DeriveDuration(timeRange string) (int, bool) {
	if strings.TrimSpace(timeRange) == "" {
		return 0, false
	}
	if strings.Contains(strings.ToLower(timeRange), "ende") {
		return EndeDuration, true
	}

	tokens := clockPattern.FindAllStringSubmatch(timeRange, -1)
	if len(tokens) < 2 {
		return 0, false
	}

	start := toMinutes(tokens[0])
	end := toMinutes(tokens[1])

	diff := end - start
	if diff < 0 {
		diff += 24 * 60
	}
	if diff <= 0 {
		return 0, false
	}
	return diff, true
}

// NormalizeDuration validates an explicitly supplied duration. Values are
// rounded to whole minutes and must be positive.
func NormalizeDuration(minutes float64) (int, bool) {
	rounded := int(math.Round(minutes))
	if rounded <= 0 {
		return 0, false
	}
	return rounded, true
}

func toMinutes(token []string) int {
	hours, _ := strconv.Atoi(token[1])
	minutes, _ := strconv.Atoi(token[2])
	return hours*60 + minutes
}
