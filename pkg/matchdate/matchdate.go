// Package matchdate converts between the calendar date of a match and the
// German display form used on the schedule, e.g. "Sa, 06.12.".
//
// Early data only carried the display string, so parsing has to guess the
// year: a parsed date further than ~9 months in the future belongs to the
// previous year, further than ~9 months in the past to the next one.
package matchdate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ISOLayout is the wire format of the calendar date column.
const ISOLayout = "2006-01-02"

// yearGuessThreshold is roughly nine months, in days.
const yearGuessThreshold = 270

var displayPattern = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.?`)

var weekdayShort = map[time.Weekday]string{
	time.Sunday:    "So",
	time.Monday:    "Mo",
	time.Tuesday:   "Di",
	time.Wednesday: "Mi",
	time.Thursday:  "Do",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
}

// ParseDisplay parses a display-format date like "Sa, 06.12." relative to
// now. The weekday prefix is ignored; only day and month matter.
func ParseDisplay(display string, now time.Time) (time.Time, bool) {
	match := displayPattern.FindStringSubmatch(display)
	if match == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	parsed := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())

	diffDays := int(parsed.Sub(today).Hours() / 24)
	if diffDays > yearGuessThreshold {
		parsed = parsed.AddDate(-1, 0, 0)
	} else if diffDays < -yearGuessThreshold {
		parsed = parsed.AddDate(1, 0, 0)
	}
	return parsed, true
}

// FormatDisplay renders a date as "Sa, 06.12.".
func FormatDisplay(date time.Time) string {
	return fmt.Sprintf("%s, %02d.%02d.", weekdayShort[date.Weekday()], date.Day(), int(date.Month()))
}

// ForComparison resolves the date used for sorting and reminder targeting.
// The calendar column wins when set; the display string is the fallback for
// rows created before the column existed.
func ForComparison(calendarDate, display string, now time.Time) (time.Time, bool) {
	if calendarDate != "" {
		parsed, err := time.ParseInLocation(ISOLayout, calendarDate, now.Location())
		if err == nil {
			return parsed, true
		}
	}
	return ParseDisplay(display, now)
}
