package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"trade-journal/internal/domain"
	"trade-journal/internal/metrics"
	"trade-journal/internal/reporting"
)

var (
	statsFilter filterFlags
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics",
	Long: `Print the core statistics for the trades matching the filter flags.

Examples:
  go run ./cmd/journal stats
  go run ./cmd/journal stats --account eval-50k --start 2024-01-01 --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsFilter.bind(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON instead of text")
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := statsFilter.filter()
	if err != nil {
		return err
	}

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := metrics.NewAggregator(st.Trades).ComputeStats(ctx, filter)
	if errors.Is(err, metrics.ErrNoTrades) {
		fmt.Fprintln(cmd.OutOrStdout(), "no trades match")
		return nil
	}
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	printStats(cmd.OutOrStdout(), stats)
	return nil
}

func printStats(w io.Writer, s *domain.Stats) {
	rows := [][2]string{
		{"Period", s.FirstDate.Format(domain.DateLayout) + " to " + s.LastDate.Format(domain.DateLayout)},
		{"Trades", fmt.Sprintf("%d (%dW / %dL / %dBE)", s.TotalTrades, s.Wins, s.Losses, s.Breakeven)},
		{"Win rate", reporting.FormatPercent(s.WinRate)},
		{"Net P/L", reporting.FormatMoney(s.TotalPL)},
		{"Expectancy", reporting.FormatMoney(s.Expectancy)},
		{"Profit factor", reporting.FormatRatio(s.ProfitFactor)},
		{"Payoff ratio", reporting.FormatRatio(s.PayoffRatio)},
		{"Avg R", reporting.FormatR(s.AvgR)},
		{"Sharpe", fmt.Sprintf("%.2f", s.Sharpe)},
		{"Sortino", fmt.Sprintf("%.2f", s.Sortino)},
		{"Max drawdown", reporting.FormatMoney(s.MaxDrawdown)},
		{"Calmar", reporting.FormatRatio(s.Calmar)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-14s %s\n", r[0], r[1])
	}
}
