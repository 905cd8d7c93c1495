// Package calendar provides pure date arithmetic for reports: week and month
// boundaries, and exact YYYY-MM-DD parsing and formatting.
//
// All dates are normalized to midnight UTC so that serialization uses the
// date's own calendar fields and never drifts to a neighboring day through
// timezone conversion.
package calendar

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for month labels.
const MonthLayout = "2006-01"

// ErrInvalidDate is returned when a string is not an exact YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ErrInvalidMonth is returned when a string is not an exact YYYY-MM label.
var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

// Week is a fixed Monday-to-Sunday span. Days holds the ordered sequence
// Monday..Sunday; End is always Start plus six days.
type Week struct {
	Start time.Time
	End   time.Time
	Days  [7]time.Time
}

// ParseDate parses an exact YYYY-MM-DD string into a midnight-UTC date.
// Anything else, including real-looking dates such as 2025-02-30 or loosely
// formatted ones such as 2025-6-1, fails with ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil || t.Format(DateLayout) != s {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD using its own calendar fields.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses an exact YYYY-MM label into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, s, time.UTC)
	if err != nil || t.Format(MonthLayout) != s {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// Midnight truncates t to midnight UTC, keeping its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekOf returns the Monday-to-Sunday week containing anchor. An anchor on a
// Sunday belongs to the week starting six days earlier. Month and year
// boundaries are crossed naturally (a week may start in the previous
// December).
func WeekOf(anchor time.Time) Week {
	weekday := int(anchor.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := Midnight(anchor).AddDate(0, 0, -(weekday - 1))

	var w Week
	w.Start = start
	for i := range w.Days {
		w.Days[i] = start.AddDate(0, 0, i)
	}
	w.End = w.Days[6]
	return w
}

// MonthBounds returns the first and last calendar day of anchor's month,
// respecting variable month lengths and leap years.
func MonthBounds(anchor time.Time) (time.Time, time.Time) {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysBetween returns the number of whole days from start to end. Both
// arguments are truncated to their calendar date first, so the result for
// equal dates is zero.
func DaysBetween(start, end time.Time) int {
	return int(Midnight(end).Sub(Midnight(start)) / (24 * time.Hour))
}
