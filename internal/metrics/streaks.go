package metrics

import (
	"trade-journal/internal/domain"
)

// Streaks walks trades chronologically and measures runs of consecutive wins
// and losses. A breakeven trade ends both kinds of run, so [+1, +1, 0, +1]
// has a best win streak of 2.
func Streaks(trades []*domain.Trade) domain.StreakStats {
	var s domain.StreakStats
	var winRuns, lossRuns []int
	run := 0 // >0 win run length, <0 loss run length

	closeRun := func() {
		switch {
		case run > 0:
			winRuns = append(winRuns, run)
		case run < 0:
			lossRuns = append(lossRuns, -run)
		}
		run = 0
	}

	for _, t := range SortChronological(trades) {
		switch t.Outcome() {
		case domain.OutcomeWin:
			if run < 0 {
				closeRun()
			}
			run++
		case domain.OutcomeLoss:
			if run > 0 {
				closeRun()
			}
			run--
		default:
			closeRun()
		}
		if run > s.BestWinStreak {
			s.BestWinStreak = run
		}
		if -run > s.WorstLossStreak {
			s.WorstLossStreak = -run
		}
	}
	s.CurrentStreak = run
	closeRun()

	s.AvgWinStreak = meanInts(winRuns)
	s.AvgLossStreak = meanInts(lossRuns)
	return s
}

func meanInts(xs []int) float64 {
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return average(float64(sum), len(xs))
}
