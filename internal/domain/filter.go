package domain

import "time"

// TradeFilter selects trades from a store. Zero values mean "no constraint".
// StartDate and EndDate are inclusive calendar dates.
type TradeFilter struct {
	AccountID string
	ModelID   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Matches reports whether t satisfies the filter.
func (f TradeFilter) Matches(t *Trade) bool {
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.ModelID != "" && t.ModelID != f.ModelID {
		return false
	}
	d := CalendarDate(t.Date)
	if f.StartDate != nil && d.Before(CalendarDate(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && d.After(CalendarDate(*f.EndDate)) {
		return false
	}
	return true
}

// WithRange returns a copy of f restricted to [start, end].
func (f TradeFilter) WithRange(start, end time.Time) TradeFilter {
	s := CalendarDate(start)
	e := CalendarDate(end)
	f.StartDate = &s
	f.EndDate = &e
	return f
}
