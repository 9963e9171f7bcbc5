package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trade-journal/internal/metrics"
	"trade-journal/internal/reporting"
)

var compareFilter filterFlags

var compareCmd = &cobra.Command{
	Use:       "compare <instrument|direction|model|account>",
	Short:     "Compare performance across a dimension",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"instrument", "direction", "model", "account"},
	RunE:      runCompare,
}

func init() {
	compareFilter.bind(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	filter, err := compareFilter.filter()
	if err != nil {
		return err
	}

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	groups, err := metrics.NewAggregator(st.Trades).Compare(ctx, filter, args[0])
	if errors.Is(err, metrics.ErrNoTrades) {
		fmt.Fprintln(cmd.OutOrStdout(), "no trades match")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %6s %8s %12s %8s %10s\n", "KEY", "TRADES", "WIN%", "NET P/L", "PF", "AVG R")
	for _, g := range groups {
		fmt.Fprintf(out, "%-16s %6d %8s %12s %8s %10s\n",
			g.Key, g.Trades,
			reporting.FormatPercent(g.WinRate),
			reporting.FormatMoney(g.TotalPL),
			reporting.FormatRatio(g.ProfitFactor),
			reporting.FormatR(g.AvgR))
	}
	return nil
}
