package stats

import (
	"fmt"
	"time"
)

// TimeRange represents a half-open [Start, End) time period.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// WeekRangeFrom calculates the start and end of a week with an offset from a
// reference time. offset = 0 means the week containing referenceTime, -1
// means the previous week, etc. The week starts on Monday.
func WeekRangeFrom(referenceTime time.Time, offset int) TimeRange {
	weekday := int(referenceTime.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7 (ISO 8601)
	}
	currentWeekStart := referenceTime.AddDate(0, 0, -weekday+1).Truncate(24 * time.Hour)

	weekStart := currentWeekStart.AddDate(0, 0, offset*7)
	return TimeRange{
		Start: weekStart,
		End:   weekStart.AddDate(0, 0, 7),
	}
}

// MonthRangeFrom calculates the start and end of a month with an offset from
// a reference time. offset = 0 means the month containing referenceTime, -1
// means the previous month, etc.
func MonthRangeFrom(referenceTime time.Time, offset int) TimeRange {
	currentMonthStart := time.Date(referenceTime.Year(), referenceTime.Month(), 1, 0, 0, 0, 0, referenceTime.Location())

	monthStart := currentMonthStart.AddDate(0, offset, 0)
	return TimeRange{
		Start: monthStart,
		End:   monthStart.AddDate(0, 1, 0),
	}
}

// SeasonRange returns the calendar month window covered by a season.
// Seasons are one month long, counted from seasonOneStart.
func SeasonRange(season int, seasonOneStart time.Time) TimeRange {
	if season < 1 {
		season = 1
	}
	start := time.Date(seasonOneStart.Year(), seasonOneStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	start = start.AddDate(0, season-1, 0)
	return TimeRange{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// FormatPeriod returns a human-readable description of the time period.
func (tr TimeRange) FormatPeriod() string {
	start := tr.Start.Format("2006-01-02")
	end := tr.End.AddDate(0, 0, -1).Format("2006-01-02") // End is exclusive
	return fmt.Sprintf("%s to %s", start, end)
}

// MonthName returns the month name and year for a time range.
func (tr TimeRange) MonthName() string {
	return tr.Start.Format("January 2006")
}
