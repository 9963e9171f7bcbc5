package reporting

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"trade-journal/internal/domain"
)

var tradeCSVHeader = []string{
	"id", "date", "entry_time", "pair", "direction", "net_pl", "r_multiple",
	"rule_violation", "mistake_tag", "grade", "model_id", "account_id",
	"entry_price", "exit_price", "stop_loss", "take_profit", "notes",
}

// RenderTradesCSV renders trades as CSV string, one row per trade in the
// given order.
func RenderTradesCSV(trades []*domain.Trade) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(tradeCSVHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, t := range trades {
		err := w.Write([]string{
			t.ID,
			t.DateKey(),
			t.EntryTime,
			t.Pair,
			string(t.Direction),
			strconv.FormatFloat(t.NetPL, 'f', 2, 64),
			optionalFloat(t.RMultiple),
			strconv.FormatBool(t.RuleViolation),
			t.MistakeTag,
			string(t.Grade),
			t.ModelID,
			t.AccountID,
			optionalFloat(t.EntryPrice),
			optionalFloat(t.ExitPrice),
			optionalFloat(t.StopLoss),
			optionalFloat(t.TakeProfit),
			t.Notes,
		})
		if err != nil {
			return "", fmt.Errorf("write trade %s: %w", t.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderStatsCSV renders stats as metric,value rows. A nil stats renders the
// header only.
func RenderStatsCSV(s *domain.Stats) string {
	var sb strings.Builder

	// Header
	sb.WriteString("metric,value\n")
	if s == nil {
		return sb.String()
	}

	rows := []struct {
		name  string
		value float64
	}{
		{"total_trades", float64(s.TotalTrades)},
		{"wins", float64(s.Wins)},
		{"losses", float64(s.Losses)},
		{"breakeven", float64(s.Breakeven)},
		{"win_rate", s.WinRate},
		{"total_pl", s.TotalPL},
		{"gross_win", s.GrossWin},
		{"gross_loss", s.GrossLoss},
		{"avg_win", s.AvgWin},
		{"avg_loss", s.AvgLoss},
		{"profit_factor", s.ProfitFactor},
		{"payoff_ratio", s.PayoffRatio},
		{"expectancy", s.Expectancy},
		{"std_dev", s.StdDev},
		{"sharpe", s.Sharpe},
		{"sortino", s.Sortino},
		{"max_drawdown", s.MaxDrawdown},
		{"calmar", s.Calmar},
		{"best_trade", s.BestTrade},
		{"worst_trade", s.WorstTrade},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s,%.6f\n", row.name, row.value))
	}
	if s.AvgR != nil {
		sb.WriteString(fmt.Sprintf("avg_r,%.6f\n", *s.AvgR))
	}

	return sb.String()
}
