package metrics

import (
	"sort"
	"strings"

	"trade-journal/internal/domain"
)

// DefaultTopMistakes is the number of mistake tags reported when topN <= 0.
const DefaultTopMistakes = 5

// Discipline splits trades into rule-violating and clean sets and reports how
// each performed. HiddenCost is the summed NetPL of violating trades and is
// reported as-is, including when violations were net profitable.
// Returns nil when trades is empty.
func Discipline(trades []*domain.Trade, topN int) *domain.DisciplineReport {
	sorted := SortChronological(trades)
	if len(sorted) == 0 {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopMistakes
	}

	var violated, clean []*domain.Trade
	tags := make(map[string]int)
	for _, t := range sorted {
		if !t.RuleViolation {
			clean = append(clean, t)
			continue
		}
		violated = append(violated, t)
		if tag := strings.TrimSpace(t.MistakeTag); tag != "" {
			tags[tag]++
		}
	}

	r := &domain.DisciplineReport{
		Violated:      partition(violated),
		Clean:         partition(clean),
		ViolationRate: computeWinRate(len(violated), len(sorted)),
		RollingRate:   RollingViolationRate(sorted, DefaultWindow),
		TopMistakes:   topTags(tags, topN),
	}
	if r.Violated != nil {
		r.HiddenCost = r.Violated.TotalPL
	}
	return r
}

// partition summarises one side of the split; nil when empty.
func partition(trades []*domain.Trade) *domain.Partition {
	if len(trades) == 0 {
		return nil
	}
	p := &domain.Partition{Count: len(trades)}
	wins := 0
	for _, t := range trades {
		p.TotalPL += t.NetPL
		if t.Outcome() == domain.OutcomeWin {
			wins++
		}
	}
	p.AvgPL = average(p.TotalPL, p.Count)
	p.WinRate = computeWinRate(wins, p.Count)
	return p
}

// topTags returns the n most frequent tags, count descending then tag ascending.
func topTags(tags map[string]int, n int) []domain.TagCount {
	out := make([]domain.TagCount, 0, len(tags))
	for tag, count := range tags {
		out = append(out, domain.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
