package metrics

import (
	"math"

	"trade-journal/internal/domain"
)

// rBucketEdges are the canonical R-multiple histogram boundaries. Buckets are
// (edge[i-1], edge[i]], with an open bucket below the first edge and above the
// last one: (-inf,-2] (-2,-1] (-1,0] (0,1] (1,3] (3,7] (7,10] (10,inf).
var rBucketEdges = []float64{-2, -1, 0, 1, 3, 7, 10}

var rBucketLabels = []string{
	"<= -2R",
	"-2R to -1R",
	"-1R to 0R",
	"0R to 1R",
	"1R to 3R",
	"3R to 7R",
	"7R to 10R",
	"> 10R",
}

// RMultipleHistogram counts trades per R bucket. Trades without an R-multiple
// are excluded. Every bucket is emitted, including empty ones, so the sum of
// counts equals the number of trades carrying R.
func RMultipleHistogram(trades []*domain.Trade) []domain.Bucket {
	buckets := make([]domain.Bucket, len(rBucketEdges)+1)
	for i := range buckets {
		b := domain.Bucket{Label: rBucketLabels[i]}
		switch {
		case i == 0:
			b.OpenBelow = true
			b.Min = rBucketEdges[0]
			b.Max = rBucketEdges[0]
		case i == len(rBucketEdges):
			b.OpenAbove = true
			b.Min = rBucketEdges[i-1]
			b.Max = rBucketEdges[i-1]
		default:
			b.Min = rBucketEdges[i-1]
			b.Max = rBucketEdges[i]
		}
		buckets[i] = b
	}

	total := 0
	for _, t := range trades {
		if t == nil || t.RMultiple == nil {
			continue
		}
		r := *t.RMultiple
		if math.IsNaN(r) {
			continue
		}
		buckets[rBucketIndex(r)].Count++
		total++
	}

	for i := range buckets {
		buckets[i].Percentage = computeWinRate(buckets[i].Count, total)
	}
	return buckets
}

// rBucketIndex returns the first bucket whose upper edge is >= r.
func rBucketIndex(r float64) int {
	for i, edge := range rBucketEdges {
		if r <= edge {
			return i
		}
	}
	return len(rBucketEdges)
}
