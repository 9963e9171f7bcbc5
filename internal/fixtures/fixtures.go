// Package fixtures provides a deterministic demo journal.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
)

// Load populates store with the demo trades.
func Load(ctx context.Context, store storage.TradeStore) error {
	if err := store.InsertBulk(ctx, Trades()); err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}
	return nil
}

type row struct {
	pair      string
	direction domain.Direction
	entry     string
	netPL     float64
	r         float64 // 0 means no R recorded
	mistake   string  // non-empty marks a rule violation
	grade     domain.Grade
	model     string
	account   string
}

// pattern repeats over consecutive weekdays starting 2024-01-02.
var pattern = []row{
	{"ES", domain.DirectionLong, "09:35", 425, 2.1, "", domain.GradeA, "orb", "eval-50k"},
	{"NQ", domain.DirectionShort, "10:05", -180, -0.9, "", domain.GradeB, "orb", "eval-50k"},
	{"ES", domain.DirectionLong, "09:42", 310, 1.6, "", domain.GradeA, "vwap-reclaim", "eval-50k"},
	{"CL", domain.DirectionShort, "11:20", -260, -1.3, "moved stop", domain.GradeC, "vwap-reclaim", "funded-100k"},
	{"EURUSD", domain.DirectionLong, "03:15", 0, 0, "", "", "london-break", "funded-100k"},
	{"NQ", domain.DirectionLong, "09:31", 640, 3.2, "", domain.GradeAPlus, "orb", "funded-100k"},
	{"ES", domain.DirectionShort, "14:10", -210, -1.05, "revenge trade", domain.GradeF, "", "eval-50k"},
	{"GC", domain.DirectionLong, "", 150, 0.75, "", domain.GradeB, "vwap-reclaim", "funded-100k"},
	{"NQ", domain.DirectionShort, "10:45", -95, -0.5, "early entry", domain.GradeC, "orb", "eval-50k"},
	{"ES", domain.DirectionLong, "09:50", 280, 1.4, "", domain.GradeA, "orb", "funded-100k"},
	{"EURUSD", domain.DirectionShort, "08:05", -120, -1, "", domain.GradeB, "london-break", "funded-100k"},
	{"CL", domain.DirectionLong, "13:30", 520, 2.6, "oversized", domain.GradeB, "", "eval-50k"},
}

// tradingDays is the number of demo days generated.
const tradingDays = 36

// Trades returns the demo trades, one per weekday from 2024-01-02.
func Trades() []*domain.Trade {
	trades := make([]*domain.Trade, 0, tradingDays)
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < tradingDays; i++ {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}

		p := pattern[i%len(pattern)]
		// Later cycles drift slightly so the three months differ.
		drift := float64(i/len(pattern)) * 15

		t := &domain.Trade{
			ID:            fmt.Sprintf("demo-%03d", i+1),
			Date:          d,
			EntryTime:     p.entry,
			Pair:          p.pair,
			Direction:     p.direction,
			NetPL:         p.netPL + signOf(p.netPL)*drift,
			RuleViolation: p.mistake != "",
			MistakeTag:    p.mistake,
			Grade:         p.grade,
			ModelID:       p.model,
			AccountID:     p.account,
			CreatedAt:     d.Add(16 * time.Hour),
		}
		if p.r != 0 {
			r := p.r
			t.RMultiple = &r
		}
		trades = append(trades, t)
		d = d.AddDate(0, 0, 1)
	}
	return trades
}

func signOf(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
