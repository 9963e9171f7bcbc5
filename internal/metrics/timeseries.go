package metrics

import (
	"trade-journal/internal/domain"
)

// EquityCurve returns cumulative NetPL after each trade, labeled by trade date.
// Same-day trades produce separate points.
func EquityCurve(trades []*domain.Trade) []domain.Point {
	sorted := SortChronological(trades)
	points := make([]domain.Point, 0, len(sorted))

	cumulative := 0.0
	for _, t := range sorted {
		cumulative += t.NetPL
		points = append(points, domain.Point{Label: t.DateKey(), Value: cumulative})
	}
	return points
}

// DrawdownCurve returns -(peak - cumulative) after each trade. Values are <= 0.
func DrawdownCurve(trades []*domain.Trade) []domain.Point {
	sorted := SortChronological(trades)
	points := make([]domain.Point, 0, len(sorted))

	cumulative := 0.0
	peak := 0.0
	for _, t := range sorted {
		cumulative += t.NetPL
		if cumulative > peak {
			peak = cumulative
		}
		dd := 0.0
		if peak > cumulative {
			dd = cumulative - peak
		}
		points = append(points, domain.Point{Label: t.DateKey(), Value: dd})
	}
	return points
}

// MonthlyPL groups trades by calendar month in chronological order and
// carries the running total across months.
func MonthlyPL(trades []*domain.Trade) []domain.MonthlyPoint {
	sorted := SortChronological(trades)
	months := make([]domain.MonthlyPoint, 0)

	cumulative := 0.0
	for _, t := range sorted {
		key := t.Date.Format("2006-01")
		cumulative += t.NetPL
		if n := len(months); n > 0 && months[n-1].Month == key {
			months[n-1].PL += t.NetPL
			months[n-1].Trades++
			months[n-1].Cumulative = cumulative
			continue
		}
		months = append(months, domain.MonthlyPoint{
			Month:      key,
			PL:         t.NetPL,
			Cumulative: cumulative,
			Trades:     1,
		})
	}
	return months
}

// DayOfWeekAverages returns mean NetPL per weekday, Monday first.
// All seven days are present for a non-empty set; days without trades are 0.
func DayOfWeekAverages(trades []*domain.Trade) []domain.Point {
	var sums [7]float64
	var counts [7]int
	seen := false
	for _, t := range trades {
		if t == nil {
			continue
		}
		seen = true
		i := weekdayIndex(t)
		sums[i] += t.NetPL
		counts[i]++
	}
	if !seen {
		return []domain.Point{}
	}

	points := make([]domain.Point, 7)
	for i, name := range domain.Weekdays {
		points[i] = domain.Point{Label: name, Value: average(sums[i], counts[i])}
	}
	return points
}

// weekdayIndex maps the trade's calendar date onto Weekdays (Monday = 0).
// Date already holds the trader's local calendar day, so no zone shift applies.
func weekdayIndex(t *domain.Trade) int {
	return (int(t.Date.Weekday()) + 6) % 7
}
