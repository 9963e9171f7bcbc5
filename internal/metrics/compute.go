package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"trade-journal/internal/domain"
)

// TradingDays is the annualisation factor applied to Sharpe and Sortino.
// It is applied regardless of how often the account actually trades.
const TradingDays = 252

// epsilon below which a deviation is treated as zero; keeps float noise on
// constant P/L series from producing enormous ratios.
const epsilon = 1e-9

// ComputeStats calculates the core statistics bundle for trades.
// Returns nil when trades is empty so callers can render "no data" instead of
// a misleading 0% win rate.
func ComputeStats(trades []*domain.Trade) *domain.Stats {
	sorted := SortChronological(trades)
	n := len(sorted)
	if n == 0 {
		return nil
	}

	s := &domain.Stats{
		TotalTrades: n,
		BestTrade:   sorted[0].NetPL,
		WorstTrade:  sorted[0].NetPL,
		FirstDate:   sorted[0].Date,
		LastDate:    sorted[n-1].Date,
	}

	var downsideSq float64
	for _, t := range sorted {
		switch t.Outcome() {
		case domain.OutcomeWin:
			s.Wins++
			s.GrossWin += t.NetPL
		case domain.OutcomeLoss:
			s.Losses++
			s.GrossLoss += -t.NetPL
			downsideSq += t.NetPL * t.NetPL
		default:
			s.Breakeven++
		}
		if t.NetPL > s.BestTrade {
			s.BestTrade = t.NetPL
		}
		if t.NetPL < s.WorstTrade {
			s.WorstTrade = t.NetPL
		}
	}

	pls := netPLs(sorted)
	s.TotalPL = floats.Sum(pls)
	mean, std := stat.PopMeanStdDev(pls, nil)
	if std < epsilon {
		std = 0
	}
	s.MeanPL = mean
	s.StdDev = std

	s.WinRate = computeWinRate(s.Wins, n)
	s.AvgWin = average(s.GrossWin, s.Wins)
	s.AvgLoss = average(s.GrossLoss, s.Losses)
	s.ProfitFactor = safeRatio(s.GrossWin, s.GrossLoss)
	s.PayoffRatio = safeRatio(s.AvgWin, s.AvgLoss)
	s.Expectancy = computeExpectancy(s.WinRate, s.AvgWin, s.AvgLoss)

	annualise := math.Sqrt(TradingDays)
	if std > 0 {
		s.Sharpe = mean / std * annualise
	}

	// Downside deviation over losing trades; without losses fall back to std.
	downside := std
	if s.Losses > 0 {
		downside = math.Sqrt(downsideSq / float64(s.Losses))
	}
	if downside > epsilon {
		s.Sortino = mean / downside * annualise
	}

	s.MaxDrawdown = computeMaxDrawdown(pls)
	s.Calmar = safeRatio(s.TotalPL, s.MaxDrawdown)

	setRStats(s, rValues(sorted))

	return s
}

// setRStats fills the R-multiple fields. Trades without R are already
// excluded from rs, so they count toward neither numerator nor denominator.
func setRStats(s *domain.Stats, rs []float64) {
	s.RTradeCount = len(rs)
	if len(rs) == 0 {
		return
	}
	mean, std := stat.PopMeanStdDev(rs, nil)
	if std < epsilon {
		std = 0
	}
	best := floats.Max(rs)
	worst := floats.Min(rs)
	s.AvgR = &mean
	s.StdDevR = &std
	s.BestR = &best
	s.WorstR = &worst
}

// computeWinRate returns wins / total as a percentage.
func computeWinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

// computeExpectancy returns the expected P/L per trade from win rate (percent)
// and average win/loss magnitudes.
func computeExpectancy(winRate, avgWin, avgLoss float64) float64 {
	p := winRate / 100
	return p*avgWin - (1-p)*avgLoss
}

// average returns sum / count, or 0 when count is zero.
func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// safeRatio divides num by den with the engine's zero-denominator policy:
// InfiniteRatio when num is positive, otherwise 0.
func safeRatio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	if num > 0 {
		return domain.InfiniteRatio
	}
	return 0
}

// computeMaxDrawdown calculates worst peak-to-trough on cumulative P/L.
// max_drawdown = MAX(peak_cumulative - cumulative), always >= 0.
// Values must be in chronological order.
func computeMaxDrawdown(pls []float64) float64 {
	cumulative := 0.0
	peak := 0.0
	maxDrawdown := 0.0

	for _, pl := range pls {
		cumulative += pl
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	return maxDrawdown
}
