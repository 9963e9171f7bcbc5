package reporting

import (
	"fmt"
	"strings"
	"time"

	"trade-journal/internal/domain"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# %s\n\n", r.Title))
	if r.Subtitle != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n\n", r.Subtitle))
	}
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.AccountID != "" || r.ModelID != "" {
		sb.WriteString(fmt.Sprintf("Account: %s | Model: %s\n\n", orAll(r.AccountID), orAll(r.ModelID)))
	}

	if r.Stats == nil {
		sb.WriteString("No trades in this period.\n")
		return sb.String()
	}
	s := r.Stats

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", s.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Wins / Losses / Breakeven | %d / %d / %d |\n", s.Wins, s.Losses, s.Breakeven))
	sb.WriteString(fmt.Sprintf("| Win Rate | %s |\n", FormatPercent(s.WinRate)))
	sb.WriteString(fmt.Sprintf("| Net P/L | %s |\n", FormatMoney(s.TotalPL)))
	sb.WriteString(fmt.Sprintf("| Gross Win | %s |\n", FormatMoney(s.GrossWin)))
	sb.WriteString(fmt.Sprintf("| Gross Loss | %s |\n", FormatMoney(s.GrossLoss)))
	sb.WriteString(fmt.Sprintf("| Avg Win | %s |\n", FormatMoney(s.AvgWin)))
	sb.WriteString(fmt.Sprintf("| Avg Loss | %s |\n", FormatMoney(s.AvgLoss)))
	sb.WriteString(fmt.Sprintf("| Profit Factor | %s |\n", FormatRatio(s.ProfitFactor)))
	sb.WriteString(fmt.Sprintf("| Payoff Ratio | %s |\n", FormatRatio(s.PayoffRatio)))
	sb.WriteString(fmt.Sprintf("| Expectancy | %s |\n", FormatMoney(s.Expectancy)))
	sb.WriteString(fmt.Sprintf("| Avg R | %s |\n", FormatR(s.AvgR)))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %s |\n", FormatMoney(s.MaxDrawdown)))
	sb.WriteString(fmt.Sprintf("| Sharpe | %.2f |\n", s.Sharpe))
	sb.WriteString(fmt.Sprintf("| Sortino | %.2f |\n", s.Sortino))
	sb.WriteString(fmt.Sprintf("| Calmar | %s |\n", FormatRatio(s.Calmar)))
	sb.WriteString(fmt.Sprintf("| Best Trade | %s |\n", FormatMoney(s.BestTrade)))
	sb.WriteString(fmt.Sprintf("| Worst Trade | %s |\n", FormatMoney(s.WorstTrade)))
	sb.WriteString("\n")

	// Streaks
	if r.Streaks != nil {
		sb.WriteString("## Streaks\n\n")
		sb.WriteString("| Best Win | Worst Loss | Avg Win | Avg Loss | Current |\n")
		sb.WriteString("|----------|------------|---------|----------|---------|\n")
		sb.WriteString(fmt.Sprintf("| %d | %d | %.1f | %.1f | %+d |\n",
			r.Streaks.BestWinStreak, r.Streaks.WorstLossStreak,
			r.Streaks.AvgWinStreak, r.Streaks.AvgLossStreak, r.Streaks.CurrentStreak))
		sb.WriteString("\n")
	}

	// Instruments
	sb.WriteString("## Instruments\n\n")
	sb.WriteString("| Instrument | Trades | Win Rate | Net P/L | Profit Factor |\n")
	sb.WriteString("|------------|--------|----------|---------|---------------|\n")
	for _, g := range r.Instruments {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
			g.Key, g.Trades, FormatPercent(g.WinRate), FormatMoney(g.TotalPL), FormatRatio(g.ProfitFactor)))
	}
	sb.WriteString("\n")

	// Monthly
	if len(r.Monthly) > 1 {
		sb.WriteString("## Monthly\n\n")
		sb.WriteString("| Month | Trades | P/L | Cumulative |\n")
		sb.WriteString("|-------|--------|-----|------------|\n")
		for _, m := range r.Monthly {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
				m.Month, m.Trades, FormatMoney(m.PL), FormatMoney(m.Cumulative)))
		}
		sb.WriteString("\n")
	}

	// Trades
	sb.WriteString("## Trades\n\n")
	sb.WriteString("| Date | Time | Pair | Side | Net P/L | R | Grade | Violation |\n")
	sb.WriteString("|------|------|------|------|---------|---|-------|-----------|\n")
	for _, t := range r.Trades {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			t.DateKey(), dash(t.EntryTime), t.Pair, t.Direction,
			FormatMoney(t.NetPL), FormatR(t.RMultiple), dash(string(t.Grade)), violation(t)))
	}

	return sb.String()
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func violation(t *domain.Trade) string {
	if !t.RuleViolation {
		return ""
	}
	if t.MistakeTag != "" {
		return "yes (" + t.MistakeTag + ")"
	}
	return "yes"
}
