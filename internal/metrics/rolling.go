package metrics

import (
	"trade-journal/internal/domain"
)

// DefaultWindow is the rolling window length in trades.
const DefaultWindow = 10

// RollingWinRate returns the win rate (percent) over each trailing window of
// trades. Output length is N-window+1; empty when N < window.
func RollingWinRate(trades []*domain.Trade, window int) []domain.Point {
	return rolling(trades, window, func(w []*domain.Trade) float64 {
		wins := 0
		for _, t := range w {
			if t.Outcome() == domain.OutcomeWin {
				wins++
			}
		}
		return computeWinRate(wins, len(w))
	})
}

// RollingExpectancy returns expectancy over each trailing window of trades.
func RollingExpectancy(trades []*domain.Trade, window int) []domain.Point {
	return rolling(trades, window, windowExpectancy)
}

// RollingViolationRate returns the share (percent) of rule-violating trades
// over each trailing window.
func RollingViolationRate(trades []*domain.Trade, window int) []domain.Point {
	return rolling(trades, window, func(w []*domain.Trade) float64 {
		violated := 0
		for _, t := range w {
			if t.RuleViolation {
				violated++
			}
		}
		return computeWinRate(violated, len(w))
	})
}

// rolling applies fn to every trailing window of the chronologically sorted
// trades. Each point is labeled with the date of the window's last trade.
func rolling(trades []*domain.Trade, window int, fn func([]*domain.Trade) float64) []domain.Point {
	if window <= 0 {
		window = DefaultWindow
	}
	sorted := SortChronological(trades)
	if len(sorted) < window {
		return []domain.Point{}
	}

	points := make([]domain.Point, 0, len(sorted)-window+1)
	for i := window - 1; i < len(sorted); i++ {
		w := sorted[i-window+1 : i+1]
		points = append(points, domain.Point{Label: sorted[i].DateKey(), Value: fn(w)})
	}
	return points
}

func windowExpectancy(w []*domain.Trade) float64 {
	var wins, losses int
	var grossWin, grossLoss float64
	for _, t := range w {
		switch t.Outcome() {
		case domain.OutcomeWin:
			wins++
			grossWin += t.NetPL
		case domain.OutcomeLoss:
			losses++
			grossLoss += -t.NetPL
		}
	}
	return computeExpectancy(computeWinRate(wins, len(w)), average(grossWin, wins), average(grossLoss, losses))
}
