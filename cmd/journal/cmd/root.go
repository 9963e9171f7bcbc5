// Package cmd holds the journal CLI commands.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-journal/internal/config"
	"trade-journal/internal/domain"
	"trade-journal/internal/fixtures"
	"trade-journal/internal/logger"
	"trade-journal/internal/stores"
)

var (
	// Common flags
	cfgFile     string
	verbose     bool
	useFixtures bool

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Trade journal analytics - CLI",
	Long: `Trade journal analytics - CLI

Commands:
    import      <file.csv>     - import a journal CSV export
    stats                      - print summary statistics
    compare     <dimension>    - compare instruments, models, accounts or direction
    migrate                    - apply database migrations
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".env", "env file to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&useFixtures, "use-fixtures", false, "use in-memory demo trades instead of the database")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(migrateCmd)
}

func initConfig() error {
	loaded, err := config.LoadFile(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err = logger.Init(logger.Config{Level: level, Format: "pretty", Service: "journal"})
	return err
}

// openStores opens the configured stores, or memory stores seeded with the
// demo journal under --use-fixtures.
func openStores(ctx context.Context) (*stores.Stores, error) {
	if useFixtures {
		st := stores.Memory()
		if err := fixtures.Load(ctx, st.Trades); err != nil {
			return nil, err
		}
		return st, nil
	}
	if cfg.Storage.UseMemory {
		return nil, fmt.Errorf("memory storage does not persist between runs; set POSTGRES_DSN or use --use-fixtures")
	}
	return stores.Open(ctx, cfg.Storage, log)
}

// filterFlags binds the shared trade filter flags to cmd.
type filterFlags struct {
	account string
	model   string
	start   string
	end     string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.account, "account", "", "restrict to one account")
	cmd.Flags().StringVar(&f.model, "model", "", "restrict to one model")
	cmd.Flags().StringVar(&f.start, "start", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last date (YYYY-MM-DD)")
}

func (f *filterFlags) filter() (domain.TradeFilter, error) {
	filter := domain.TradeFilter{AccountID: f.account, ModelID: f.model}
	for _, p := range []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"start", f.start, &filter.StartDate},
		{"end", f.end, &filter.EndDate},
	} {
		if p.value == "" {
			continue
		}
		d, err := domain.ParseDate(p.value)
		if err != nil {
			return domain.TradeFilter{}, fmt.Errorf("--%s: %w", p.name, err)
		}
		*p.dst = &d
	}
	return filter, nil
}
