// Package reports implements the reporting and aggregation engine: weekly
// views, range statistics, monthly reports and the composed dashboard, plus
// the validation gate that report requests pass through first.
package reports

import (
	"errors"
	"fmt"
	"time"

	"gitlab.com/gastonapp/gaston-api/internal/calendar"
)

// Range validation failures. These are the user-facing "bad input" kinds;
// anything else coming out of the engine is an execution failure.
var (
	ErrRangeReversed = errors.New("start date is after end date")
	ErrRangeTooLarge = errors.New("date range exceeds the maximum span")
	ErrRangeInFuture = errors.New("start date is in the future")
)

// ValidateRange parses a requested [start, end] window and rejects it before
// any query executes. The future check tolerates one day of timezone skew:
// a start of tomorrow passes, anything later fails.
func ValidateRange(start, end string, maxDays int, now time.Time) (time.Time, time.Time, error) {
	startDate, err := calendar.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	endDate, err := calendar.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}

	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, ErrRangeReversed
	}
	if calendar.DaysBetween(startDate, endDate) > maxDays {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}
	if startDate.After(calendar.Midnight(now).AddDate(0, 0, 1)) {
		return time.Time{}, time.Time{}, ErrRangeInFuture
	}

	return startDate, endDate, nil
}
