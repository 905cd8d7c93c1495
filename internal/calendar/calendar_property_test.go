package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// drawDate generates an arbitrary calendar date between 1970 and 2100.
func drawDate(t *rapid.T) time.Time {
	days := rapid.IntRange(0, 47481).Draw(t, "days")
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func TestWeekOfProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		anchor := drawDate(t)
		w := WeekOf(anchor)

		require.Equal(t, time.Monday, w.Start.Weekday())
		require.Equal(t, time.Sunday, w.End.Weekday())
		require.Equal(t, 6, DaysBetween(w.Start, w.End))

		// The anchor falls inside its own week.
		require.False(t, anchor.Before(w.Start))
		require.False(t, anchor.After(w.End))

		// Days is the ordered Monday..Sunday sequence.
		for i, d := range w.Days {
			require.Equal(t, w.Start.AddDate(0, 0, i), d)
		}
	})
}

func TestWeekOfAgreesForAllDaysOfWeek(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		anchor := drawDate(t)
		w := WeekOf(anchor)
		for _, d := range w.Days {
			require.Equal(t, w.Start, WeekOf(d).Start)
		}
	})
}

func TestParseFormatRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := drawDate(t)
		parsed, err := ParseDate(FormatDate(d))
		require.NoError(t, err)
		require.True(t, parsed.Equal(d))
	})
}

func TestMonthBoundsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		anchor := drawDate(t)
		start, end := MonthBounds(anchor)

		require.Equal(t, 1, start.Day())
		require.Equal(t, anchor.Month(), start.Month())
		require.Equal(t, anchor.Month(), end.Month())
		// The day after the last day is the first of the next month.
		require.Equal(t, start.AddDate(0, 1, 0), end.AddDate(0, 0, 1))
		require.False(t, anchor.Before(start))
		require.False(t, Midnight(anchor).After(end))
	})
}
