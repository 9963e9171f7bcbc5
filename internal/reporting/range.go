package reporting

import (
	"errors"
	"time"

	"trade-journal/internal/domain"
)

// ErrInvalidRange is returned when a range ends before it starts.
var ErrInvalidRange = errors.New("invalid date range: end before start")

// Range is an inclusive span of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// Label formats the range for report subtitles.
func (r Range) Label() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format(domain.DateLayout)
	}
	return r.Start.Format(domain.DateLayout) + " to " + r.End.Format(domain.DateLayout)
}

// DayRange is the single calendar day containing t.
func DayRange(t time.Time) Range {
	d := domain.CalendarDate(t)
	return Range{Start: d, End: d}
}

// WeekRange is the Monday to Sunday week containing t.
func WeekRange(t time.Time) Range {
	d := domain.CalendarDate(t)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	return Range{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthRange is the calendar month containing t.
func MonthRange(t time.Time) Range {
	d := domain.CalendarDate(t)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// CustomRange validates an explicit range.
func CustomRange(start, end time.Time) (Range, error) {
	r := Range{Start: domain.CalendarDate(start), End: domain.CalendarDate(end)}
	if r.End.Before(r.Start) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// ParsePreset resolves a named preset ("day", "week", "month") relative to ref.
func ParsePreset(name string, ref time.Time) (Range, bool) {
	switch name {
	case "day", "daily":
		return DayRange(ref), true
	case "week", "weekly":
		return WeekRange(ref), true
	case "month", "monthly":
		return MonthRange(ref), true
	default:
		return Range{}, false
	}
}
