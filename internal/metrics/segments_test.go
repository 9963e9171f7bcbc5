package metrics

import (
	"testing"

	"trade-journal/internal/domain"
)

func TestRMultipleHistogram_Coverage(t *testing.T) {
	rs := []float64{-5, -2, -1.5, -1, -0.2, 0, 0.5, 1, 2.9, 3, 6, 7, 10, 10.01, 42}
	var trades []*domain.Trade
	for i, r := range rs {
		tr := makeTrade(string(rune('a'+i)), "2024-01-01", r*10)
		tr.RMultiple = ptr(r)
		trades = append(trades, tr)
	}
	trades = append(trades, makeTrade("noR", "2024-01-01", 100))

	buckets := RMultipleHistogram(trades)

	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total != len(rs) {
		t.Errorf("expected bucket counts to sum to %d, got %d", len(rs), total)
	}

	// (min,max] rule
	expected := []int{2, 2, 2, 2, 2, 2, 1, 2}
	for i, b := range buckets {
		if b.Count != expected[i] {
			t.Errorf("bucket %s: expected %d, got %d", b.Label, expected[i], b.Count)
		}
	}
	if !buckets[0].OpenBelow || !buckets[7].OpenAbove {
		t.Error("expected open outer buckets")
	}
}

func TestRMultipleHistogram_NoR(t *testing.T) {
	buckets := RMultipleHistogram(threeTrades())

	for _, b := range buckets {
		if b.Count != 0 || b.Percentage != 0 {
			t.Errorf("expected empty bucket %s, got count=%d pct=%f", b.Label, b.Count, b.Percentage)
		}
	}
}

func TestRBucketIndex_Boundaries(t *testing.T) {
	tests := []struct {
		r        float64
		expected int
	}{
		{-2, 0},
		{-1.999, 1},
		{-1, 1},
		{0, 2},
		{0.0001, 3},
		{1, 3},
		{3, 4},
		{7, 5},
		{10, 6},
		{10.5, 7},
	}

	for _, tt := range tests {
		if got := rBucketIndex(tt.r); got != tt.expected {
			t.Errorf("rBucketIndex(%f): expected %d, got %d", tt.r, tt.expected, got)
		}
	}
}

func TestByInstrument_SortedByTotalPL(t *testing.T) {
	a := makeTrade("a", "2024-01-01", 50)
	a.Pair = "ES"
	b := makeTrade("b", "2024-01-02", -20)
	b.Pair = "NQ"
	c := makeTrade("c", "2024-01-03", 80)
	c.Pair = "NQ"
	d := makeTrade("d", "2024-01-04", 55)
	d.Pair = "GC"
	d.RMultiple = ptr(3.0)

	groups := ByInstrument([]*domain.Trade{a, b, c, d})

	keys := []string{groups[0].Key, groups[1].Key, groups[2].Key}
	expected := []string{"NQ", "GC", "ES"}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], keys[i])
		}
	}

	nq := groups[0]
	if nq.Trades != 2 || nq.WinRate != 50 || nq.ProfitFactor != 4 || nq.TotalPL != 60 {
		t.Errorf("unexpected NQ stats: %+v", nq)
	}
	if nq.AvgR != nil {
		t.Errorf("expected nil avgR for NQ, got %f", *nq.AvgR)
	}
	if groups[1].AvgR == nil || *groups[1].AvgR != 3 {
		t.Errorf("expected GC avgR 3, got %v", groups[1].AvgR)
	}
}

func TestByInstrument_TiesBrokenByKey(t *testing.T) {
	a := makeTrade("a", "2024-01-01", 10)
	a.Pair = "ZB"
	b := makeTrade("b", "2024-01-01", 10)
	b.Pair = "CL"

	groups := ByInstrument([]*domain.Trade{a, b})

	if groups[0].Key != "CL" || groups[1].Key != "ZB" {
		t.Errorf("expected CL before ZB, got %s, %s", groups[0].Key, groups[1].Key)
	}
}

func TestLongShortSplit(t *testing.T) {
	trades := threeTrades()

	ls := LongShortSplit(trades)

	if ls.Long == nil || ls.Long.Trades != 3 {
		t.Errorf("expected 3 long trades, got %+v", ls.Long)
	}
	if ls.Short != nil {
		t.Errorf("expected nil short side, got %+v", ls.Short)
	}
}

func TestSegment_ModelUnassigned(t *testing.T) {
	trades := threeTrades()
	trades[0].ModelID = "breakout"

	groups := Segment(trades, DimensionModel)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "breakout" || groups[1].Key != UnassignedKey {
		t.Errorf("unexpected keys %s, %s", groups[0].Key, groups[1].Key)
	}
}

func TestGradeBuckets_FixedOrder(t *testing.T) {
	a := makeTrade("a", "2024-01-01", 100)
	a.Grade = domain.GradeB
	b := makeTrade("b", "2024-01-02", -30)
	b.Grade = domain.GradeF
	c := makeTrade("c", "2024-01-03", 50)
	c.Grade = domain.GradeB
	d := makeTrade("d", "2024-01-04", 1000) // ungraded

	buckets := GradeBuckets([]*domain.Trade{d, b, c, a})

	if len(buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(buckets))
	}
	for i, g := range domain.Grades {
		if buckets[i].Grade != g {
			t.Errorf("position %d: expected %s, got %s", i, g, buckets[i].Grade)
		}
	}
	if buckets[2].Count != 2 || buckets[2].AvgPL != 75 {
		t.Errorf("unexpected B bucket: %+v", buckets[2])
	}
	if buckets[0].Count != 0 || buckets[0].AvgPL != 0 {
		t.Errorf("expected empty A+ bucket, got %+v", buckets[0])
	}
	if buckets[4].AvgPL != -30 {
		t.Errorf("expected F avg -30, got %f", buckets[4].AvgPL)
	}
}

func TestStreaks_BreakevenResets(t *testing.T) {
	trades := []*domain.Trade{
		makeTrade("a", "2024-01-01", 1),
		makeTrade("b", "2024-01-02", 1),
		makeTrade("c", "2024-01-03", 0),
		makeTrade("d", "2024-01-04", 1),
	}

	s := Streaks(trades)

	if s.BestWinStreak != 2 {
		t.Errorf("expected best win streak 2, got %d", s.BestWinStreak)
	}
	if s.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", s.CurrentStreak)
	}
	if s.AvgWinStreak != 1.5 {
		t.Errorf("expected avg win streak 1.5, got %f", s.AvgWinStreak)
	}
}

func TestStreaks_Losses(t *testing.T) {
	trades := []*domain.Trade{
		makeTrade("a", "2024-01-01", 5),
		makeTrade("b", "2024-01-02", -1),
		makeTrade("c", "2024-01-03", -1),
		makeTrade("d", "2024-01-04", -1),
		makeTrade("e", "2024-01-05", 2),
		makeTrade("f", "2024-01-06", -3),
	}

	s := Streaks(reversed(trades))

	if s.WorstLossStreak != 3 {
		t.Errorf("expected worst loss streak 3, got %d", s.WorstLossStreak)
	}
	if s.CurrentStreak != -1 {
		t.Errorf("expected current streak -1, got %d", s.CurrentStreak)
	}
	if s.AvgLossStreak != 2 {
		t.Errorf("expected avg loss streak 2, got %f", s.AvgLossStreak)
	}
	if s.BestWinStreak != 1 {
		t.Errorf("expected best win streak 1, got %d", s.BestWinStreak)
	}
}

func TestStreaks_EndsOnBreakeven(t *testing.T) {
	s := Streaks([]*domain.Trade{
		makeTrade("a", "2024-01-01", -4),
		makeTrade("b", "2024-01-02", 0),
	})

	if s.CurrentStreak != 0 {
		t.Errorf("expected current streak 0, got %d", s.CurrentStreak)
	}
	if s.WorstLossStreak != 1 {
		t.Errorf("expected worst loss streak 1, got %d", s.WorstLossStreak)
	}
}

func TestDiscipline(t *testing.T) {
	trades := []*domain.Trade{
		makeTrade("a", "2024-01-01", 100),
		makeTrade("b", "2024-01-02", 40),
		makeTrade("c", "2024-01-03", -30),
		makeTrade("d", "2024-01-04", -10),
		makeTrade("e", "2024-01-05", 60),
	}
	for _, i := range []int{1, 2, 4} {
		trades[i].RuleViolation = true
	}
	trades[1].MistakeTag = "fomo"
	trades[2].MistakeTag = "oversized"
	trades[4].MistakeTag = "fomo"
	trades[3].MistakeTag = "ignored" // clean trade, tag not counted

	r := Discipline(trades, 0)

	if r.Violated.Count != 3 || r.Clean.Count != 2 {
		t.Errorf("unexpected partition %d/%d", r.Violated.Count, r.Clean.Count)
	}
	if r.ViolationRate != 60 {
		t.Errorf("expected violation rate 60, got %f", r.ViolationRate)
	}
	// Net profitable violations are reported unclamped.
	if r.HiddenCost != 70 {
		t.Errorf("expected hidden cost 70, got %f", r.HiddenCost)
	}
	if !approxEqual(r.Violated.WinRate, 200.0/3.0) || r.Clean.AvgPL != 45 {
		t.Errorf("unexpected partition stats violated=%+v clean=%+v", r.Violated, r.Clean)
	}
	if len(r.TopMistakes) != 2 || r.TopMistakes[0].Tag != "fomo" || r.TopMistakes[0].Count != 2 {
		t.Errorf("unexpected top mistakes: %+v", r.TopMistakes)
	}
	if len(r.RollingRate) != 0 {
		t.Errorf("expected no rolling series under 10 trades, got %d", len(r.RollingRate))
	}
}

func TestDiscipline_EmptyAndNoViolations(t *testing.T) {
	if r := Discipline(nil, 3); r != nil {
		t.Errorf("expected nil report for empty input, got %+v", r)
	}

	r := Discipline(threeTrades(), 3)

	if r.Violated != nil {
		t.Errorf("expected nil violated partition, got %+v", r.Violated)
	}
	if r.HiddenCost != 0 || r.ViolationRate != 0 {
		t.Errorf("expected zero cost and rate, got %f/%f", r.HiddenCost, r.ViolationRate)
	}
	if r.TopMistakes == nil {
		t.Error("expected empty, non-nil mistake list")
	}
}

func TestTopTags_Limit(t *testing.T) {
	tags := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	top := topTags(tags, 3)

	expected := []string{"c", "a", "b"}
	if len(top) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(top))
	}
	for i := range expected {
		if top[i].Tag != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], top[i].Tag)
		}
	}
}
