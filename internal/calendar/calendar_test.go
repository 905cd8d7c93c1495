package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Run("parses valid dates", func(t *testing.T) {
		d, err := ParseDate("2025-01-15")
		require.NoError(t, err)
		require.Equal(t, date(2025, time.January, 15), d)
	})

	t.Run("parses leap day", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")
		require.NoError(t, err)
		require.Equal(t, date(2024, time.February, 29), d)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"2025-6-1",
			"2025-13-01",
			"2025-02-30",
			"2023-02-29",
			"15-01-2025",
			"2025/01/15",
			"2025-01-15T00:00:00Z",
			"2025-01-15 extra",
			"not-a-date",
		} {
			_, err := ParseDate(input)
			require.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
		}
	})
}

func TestFormatDate(t *testing.T) {
	t.Run("round-trips through parse", func(t *testing.T) {
		require.Equal(t, "2025-01-15", FormatDate(date(2025, time.January, 15)))
	})

	t.Run("keeps the calendar date regardless of zone", func(t *testing.T) {
		// 23:30 in UTC-5 is the next day in UTC; formatting must not drift.
		loc := time.FixedZone("UTC-5", -5*3600)
		late := time.Date(2025, time.March, 10, 23, 30, 0, 0, loc)
		require.Equal(t, "2025-03-10", FormatDate(late))
	})
}

func TestParseMonth(t *testing.T) {
	t.Run("parses valid month", func(t *testing.T) {
		m, err := ParseMonth("2025-02")
		require.NoError(t, err)
		require.Equal(t, date(2025, time.February, 1), m)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "2025", "2025-2", "2025-13", "2025-01-15"} {
			_, err := ParseMonth(input)
			require.ErrorIs(t, err, ErrInvalidMonth, "input %q", input)
		}
	})
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		start  time.Time
		end    time.Time
	}{
		{"monday anchors its own week", date(2025, time.January, 13), date(2025, time.January, 13), date(2025, time.January, 19)},
		{"midweek wednesday", date(2025, time.January, 15), date(2025, time.January, 13), date(2025, time.January, 19)},
		{"sunday belongs to preceding monday", date(2025, time.January, 19), date(2025, time.January, 13), date(2025, time.January, 19)},
		{"week crossing into new year", date(2025, time.January, 1), date(2024, time.December, 30), date(2025, time.January, 5)},
		{"week crossing month boundary", date(2025, time.March, 31), date(2025, time.March, 31), date(2025, time.April, 6)},
		{"leap february", date(2024, time.February, 29), date(2024, time.February, 26), date(2024, time.March, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeekOf(tt.anchor)
			require.Equal(t, tt.start, w.Start)
			require.Equal(t, tt.end, w.End)
			require.Equal(t, w.Start, w.Days[0])
			require.Equal(t, w.End, w.Days[6])
			for i := 1; i < 7; i++ {
				require.Equal(t, w.Days[i-1].AddDate(0, 0, 1), w.Days[i])
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		start  time.Time
		end    time.Time
	}{
		{"january", date(2025, time.January, 15), date(2025, time.January, 1), date(2025, time.January, 31)},
		{"leap february", date(2024, time.February, 10), date(2024, time.February, 1), date(2024, time.February, 29)},
		{"non-leap february", date(2025, time.February, 10), date(2025, time.February, 1), date(2025, time.February, 28)},
		{"thirty-day month", date(2025, time.April, 30), date(2025, time.April, 1), date(2025, time.April, 30)},
		{"december", date(2025, time.December, 1), date(2025, time.December, 1), date(2025, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBounds(tt.anchor)
			require.Equal(t, tt.start, start)
			require.Equal(t, tt.end, end)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, DaysBetween(date(2025, time.June, 1), date(2025, time.June, 1)))
	require.Equal(t, 6, DaysBetween(date(2025, time.January, 13), date(2025, time.January, 19)))
	require.Equal(t, 365, DaysBetween(date(2024, time.January, 1), date(2024, time.December, 31)))
	require.Equal(t, -1, DaysBetween(date(2025, time.June, 2), date(2025, time.June, 1)))
}
