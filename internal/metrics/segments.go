package metrics

import (
	"sort"

	"trade-journal/internal/domain"
)

// UnassignedKey groups trades that carry no model or account reference.
const UnassignedKey = "unassigned"

// Dimension names a segmentation axis for comparison aggregates.
type Dimension string

// Dimension values
const (
	DimensionInstrument Dimension = "instrument"
	DimensionDirection  Dimension = "direction"
	DimensionModel      Dimension = "model"
	DimensionAccount    Dimension = "account"
)

// ParseDimension returns the dimension for s, or false when unknown.
func ParseDimension(s string) (Dimension, bool) {
	switch d := Dimension(s); d {
	case DimensionInstrument, DimensionDirection, DimensionModel, DimensionAccount:
		return d, true
	default:
		return "", false
	}
}

// Segment groups trades along d. Groups are sorted by TotalPL descending,
// ties broken by key.
func Segment(trades []*domain.Trade, d Dimension) []domain.GroupStats {
	switch d {
	case DimensionDirection:
		return groupBy(trades, func(t *domain.Trade) string { return string(t.Direction) })
	case DimensionModel:
		return groupBy(trades, func(t *domain.Trade) string { return orUnassigned(t.ModelID) })
	case DimensionAccount:
		return groupBy(trades, func(t *domain.Trade) string { return orUnassigned(t.AccountID) })
	default:
		return ByInstrument(trades)
	}
}

// ByInstrument aggregates trades per pair.
func ByInstrument(trades []*domain.Trade) []domain.GroupStats {
	return groupBy(trades, func(t *domain.Trade) string { return t.Pair })
}

// ByModel aggregates trades per strategy model.
func ByModel(trades []*domain.Trade) []domain.GroupStats {
	return Segment(trades, DimensionModel)
}

// ByAccount aggregates trades per account.
func ByAccount(trades []*domain.Trade) []domain.GroupStats {
	return Segment(trades, DimensionAccount)
}

// LongShortSplit aggregates trades per direction. A side without trades is nil.
func LongShortSplit(trades []*domain.Trade) domain.LongShort {
	var long, short []*domain.Trade
	for _, t := range trades {
		if t == nil {
			continue
		}
		switch t.Direction {
		case domain.DirectionLong:
			long = append(long, t)
		case domain.DirectionShort:
			short = append(short, t)
		}
	}

	var ls domain.LongShort
	if len(long) > 0 {
		g := groupStats(string(domain.DirectionLong), long)
		ls.Long = &g
	}
	if len(short) > 0 {
		g := groupStats(string(domain.DirectionShort), short)
		ls.Short = &g
	}
	return ls
}

// GradeBuckets returns count and mean NetPL per grade in A+, A, B, C, F order.
// Ungraded trades are excluded. Empty input yields an empty slice.
func GradeBuckets(trades []*domain.Trade) []domain.GradeBucket {
	byGrade := make(map[domain.Grade]*domain.GradeBucket, len(domain.Grades))
	buckets := make([]domain.GradeBucket, 0, len(domain.Grades))
	seen := false
	for _, t := range trades {
		if t == nil {
			continue
		}
		seen = true
		if t.Grade == "" {
			continue
		}
		b, ok := byGrade[t.Grade]
		if !ok {
			b = &domain.GradeBucket{Grade: t.Grade}
			byGrade[t.Grade] = b
		}
		b.Count++
		b.TotalPL += t.NetPL
	}
	if !seen {
		return buckets
	}

	for _, g := range domain.Grades {
		b := domain.GradeBucket{Grade: g}
		if agg, ok := byGrade[g]; ok {
			b = *agg
			b.AvgPL = average(b.TotalPL, b.Count)
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func groupBy(trades []*domain.Trade, key func(*domain.Trade) string) []domain.GroupStats {
	groups := make(map[string][]*domain.Trade)
	for _, t := range trades {
		if t == nil {
			continue
		}
		k := key(t)
		groups[k] = append(groups[k], t)
	}

	out := make([]domain.GroupStats, 0, len(groups))
	for k, ts := range groups {
		out = append(out, groupStats(k, ts))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPL != out[j].TotalPL {
			return out[i].TotalPL > out[j].TotalPL
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// groupStats applies the core formulas to one group of trades.
func groupStats(key string, trades []*domain.Trade) domain.GroupStats {
	g := domain.GroupStats{Key: key, Trades: len(trades)}

	var grossWin, grossLoss, rSum float64
	rCount := 0
	for _, t := range trades {
		g.TotalPL += t.NetPL
		switch t.Outcome() {
		case domain.OutcomeWin:
			g.Wins++
			grossWin += t.NetPL
		case domain.OutcomeLoss:
			g.Losses++
			grossLoss += -t.NetPL
		default:
			g.Breakeven++
		}
		if t.RMultiple != nil {
			rSum += *t.RMultiple
			rCount++
		}
	}

	g.WinRate = computeWinRate(g.Wins, g.Trades)
	g.AvgWin = average(grossWin, g.Wins)
	g.AvgLoss = average(grossLoss, g.Losses)
	g.ProfitFactor = safeRatio(grossWin, grossLoss)
	g.Expectancy = computeExpectancy(g.WinRate, g.AvgWin, g.AvgLoss)
	if rCount > 0 {
		avg := rSum / float64(rCount)
		g.AvgR = &avg
	}
	return g
}

func orUnassigned(s string) string {
	if s == "" {
		return UnassignedKey
	}
	return s
}
