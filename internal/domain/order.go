package domain

import "sort"

// SortChronological returns a copy of trades ordered by Date ASC, CreatedAt ASC,
// ID ASC. Nil entries are dropped. The input slice is left untouched.
func SortChronological(trades []*Trade) []*Trade {
	sorted := make([]*Trade, 0, len(trades))
	for _, t := range trades {
		if t != nil {
			sorted = append(sorted, t)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}
