package metrics

import (
	"trade-journal/internal/domain"
)

// Score dimension names.
const (
	ScoreWinRate      = "win_rate"
	ScoreProfitFactor = "profit_factor"
	ScoreExpectancy   = "expectancy"
	ScoreSharpe       = "sharpe"
	ScoreConsistency  = "consistency"
	ScorePayoff       = "payoff_ratio"
)

// Range is the [Min, Max] span mapped linearly onto 0-100.
type Range struct {
	Min float64
	Max float64
}

// Normalize maps v onto 0-100, clamped. A degenerate range scores 100 at or
// above Max and 0 below it.
func (r Range) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		if v >= r.Max {
			return 100
		}
		return 0
	}
	return clamp((v-r.Min)/(r.Max-r.Min)*100, 0, 100)
}

// ScoreRanges holds the normalisation span of every score dimension.
type ScoreRanges struct {
	WinRate      Range
	ProfitFactor Range
	Expectancy   Range // account currency
	Sharpe       Range
	Consistency  Range
	Payoff       Range
}

// DefaultScoreRanges returns the standard normalisation spans.
func DefaultScoreRanges() ScoreRanges {
	return ScoreRanges{
		WinRate:      Range{Min: 20, Max: 85},
		ProfitFactor: Range{Min: 0.5, Max: 3},
		Expectancy:   Range{Min: 0, Max: 200},
		Sharpe:       Range{Min: -1, Max: 3},
		Consistency:  Range{Min: 0, Max: 100},
		Payoff:       Range{Min: 0.5, Max: 3},
	}
}

// scoreWeights sum to 1.
var scoreWeights = map[string]float64{
	ScoreWinRate:      0.20,
	ScoreProfitFactor: 0.20,
	ScoreExpectancy:   0.15,
	ScoreSharpe:       0.15,
	ScoreConsistency:  0.15,
	ScorePayoff:       0.15,
}

// CompositeScore maps six core metrics onto independent 0-100 scales and a
// weighted overall score. Returns nil for nil stats.
func CompositeScore(stats *domain.Stats, ranges ScoreRanges) *domain.Score {
	if stats == nil {
		return nil
	}

	raw := []struct {
		name  string
		value float64
		rng   Range
	}{
		{ScoreWinRate, stats.WinRate, ranges.WinRate},
		{ScoreProfitFactor, stats.ProfitFactor, ranges.ProfitFactor},
		{ScoreExpectancy, stats.Expectancy, ranges.Expectancy},
		{ScoreSharpe, stats.Sharpe, ranges.Sharpe},
		{ScoreConsistency, Consistency(stats.MeanPL, stats.StdDev), ranges.Consistency},
		{ScorePayoff, stats.PayoffRatio, ranges.Payoff},
	}

	score := &domain.Score{Dimensions: make([]domain.ScoreDimension, 0, len(raw))}
	for _, r := range raw {
		d := domain.ScoreDimension{
			Name:   r.name,
			Raw:    r.value,
			Score:  r.rng.Normalize(r.value),
			Weight: scoreWeights[r.name],
		}
		score.Overall += d.Score * d.Weight
		score.Dimensions = append(score.Dimensions, d)
	}
	score.Overall = clamp(score.Overall, 0, 100)
	return score
}

// Consistency is max(1 - std/mean, 0) * 100 for a profitable mean, 100 when a
// profitable mean has zero deviation, and 0 whenever mean <= 0.
func Consistency(mean, std float64) float64 {
	if mean <= 0 {
		return 0
	}
	if std <= 0 {
		return 100
	}
	return clamp((1-std/mean)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
