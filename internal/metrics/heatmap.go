package metrics

import (
	"time"

	"trade-journal/internal/domain"
)

// DefaultLookbackDays is the default span of the daily heatmap.
const DefaultLookbackDays = 90

// DailyHeatmap returns one entry per calendar day in the lookbackDays days
// ending at end (inclusive), oldest first. Days without trades have
// HasTrades=false, which is distinct from a breakeven day.
// Returns an empty slice when trades is empty.
func DailyHeatmap(trades []*domain.Trade, end time.Time, lookbackDays int) []domain.HeatmapDay {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	type dayAgg struct {
		pl     float64
		trades int
	}
	byDay := make(map[string]*dayAgg)
	for _, t := range trades {
		if t == nil {
			continue
		}
		key := t.DateKey()
		agg, ok := byDay[key]
		if !ok {
			agg = &dayAgg{}
			byDay[key] = agg
		}
		agg.pl += t.NetPL
		agg.trades++
	}
	if len(byDay) == 0 {
		return []domain.HeatmapDay{}
	}

	last := domain.CalendarDate(end)
	first := last.AddDate(0, 0, -(lookbackDays - 1))

	days := make([]domain.HeatmapDay, 0, lookbackDays)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateLayout)
		day := domain.HeatmapDay{Date: key}
		if agg, ok := byDay[key]; ok {
			day.PL = agg.pl
			day.Trades = agg.trades
			day.HasTrades = true
		}
		days = append(days, day)
	}
	return days
}

// WeekdayHourHeatmap buckets trades by (weekday, entry hour). Trades without a
// parseable entry time are excluded. Best and Worst are chosen among cells
// with at least one trade; ties keep the earliest cell in Monday-first,
// hour-ascending order.
func WeekdayHourHeatmap(trades []*domain.Trade) domain.HourHeatmap {
	hm := domain.HourHeatmap{Cells: [][]domain.HourCell{}}

	var grid [7][24]domain.HourCell
	populated := false
	for _, t := range trades {
		if t == nil {
			continue
		}
		hour, ok := t.EntryHour()
		if !ok {
			continue
		}
		cell := &grid[weekdayIndex(t)][hour]
		cell.PL += t.NetPL
		cell.Count++
		populated = true
	}
	if !populated {
		return hm
	}

	hm.Cells = make([][]domain.HourCell, 7)
	for d := range grid {
		row := make([]domain.HourCell, 24)
		for h := range grid[d] {
			row[h] = grid[d][h]
			row[h].Weekday = domain.Weekdays[d]
			row[h].Hour = h
		}
		hm.Cells[d] = row
	}

	for d := range hm.Cells {
		for h := range hm.Cells[d] {
			cell := hm.Cells[d][h]
			if cell.Count == 0 {
				continue
			}
			if hm.Best == nil || cell.PL > hm.Best.PL {
				c := cell
				hm.Best = &c
			}
			if hm.Worst == nil || cell.PL < hm.Worst.PL {
				c := cell
				hm.Worst = &c
			}
		}
	}
	return hm
}
