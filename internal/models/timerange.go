package models

import "time"

// TimeRange represents the selected dashboard time range.
type TimeRange int

const (
	// RangeHour shows data from the last hour.
	RangeHour TimeRange = iota
	// RangeDay shows data from the last 24 hours.
	RangeDay
	// RangeWeek shows data from the last 7 days.
	RangeWeek
	// RangeMonth shows data from the last 30 days.
	RangeMonth
	// RangeAll shows all available data.
	RangeAll
)

// ParseRange maps a query-string value to a TimeRange. Unknown or
// empty values fall back to RangeDay, the dashboard default.
func ParseRange(s string) TimeRange {
	switch s {
	case "hour":
		return RangeHour
	case "day":
		return RangeDay
	case "week":
		return RangeWeek
	case "month":
		return RangeMonth
	case "all":
		return RangeAll
	default:
		return RangeDay
	}
}

// String returns the query-string name for the range.
func (t TimeRange) String() string {
	switch t {
	case RangeHour:
		return "hour"
	case RangeDay:
		return "day"
	case RangeWeek:
		return "week"
	case RangeMonth:
		return "month"
	case RangeAll:
		return "all"
	default:
		return "day"
	}
}

// Label returns the display name for the range.
func (t TimeRange) Label() string {
	switch t {
	case RangeHour:
		return "Last hour"
	case RangeDay:
		return "Last 24 hours"
	case RangeWeek:
		return "Last 7 days"
	case RangeMonth:
		return "Last 30 days"
	case RangeAll:
		return "All time"
	default:
		return "Last 24 hours"
	}
}

// BucketLayout returns the time.Format layout used as the bucket label
// for this range. The layouts are fixed-width, so sorting labels
// lexicographically sorts buckets chronologically.
func (t TimeRange) BucketLayout() string {
	switch t {
	case RangeHour:
		return "15:04"
	case RangeDay:
		return "15:00"
	default:
		return "01/02"
	}
}

// Start returns the inclusive lower bound of the range relative to
// now. RangeAll is anchored at a fixed epoch predating all recorded
// sessions.
func (t TimeRange) Start(now time.Time) time.Time {
	switch t {
	case RangeHour:
		return now.Add(-time.Hour)
	case RangeDay:
		return now.Add(-24 * time.Hour)
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
}

// Next cycles to the next time range. Used by the TUI range toggle.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 5
}
