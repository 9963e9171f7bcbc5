package metrics

import (
	"trade-journal/internal/domain"
)

// SortChronological orders a copy of trades by date, creation time and ID.
// Every cumulative builder calls this first because stores and callers may
// hand over unsorted data.
func SortChronological(trades []*domain.Trade) []*domain.Trade {
	return domain.SortChronological(trades)
}

// netPLs extracts NetPL values in slice order.
func netPLs(trades []*domain.Trade) []float64 {
	out := make([]float64, len(trades))
	for i, t := range trades {
		out[i] = t.NetPL
	}
	return out
}

// rValues extracts present R-multiples in slice order.
func rValues(trades []*domain.Trade) []float64 {
	var out []float64
	for _, t := range trades {
		if t.RMultiple != nil {
			out = append(out, *t.RMultiple)
		}
	}
	return out
}
