// Package main generates a period report: REPORT.md, TRADES.csv and STATS.csv.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trade-journal/internal/config"
	"trade-journal/internal/domain"
	"trade-journal/internal/fixtures"
	"trade-journal/internal/logger"
	"trade-journal/internal/reporting"
	"trade-journal/internal/stores"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run does the work of main so that deferred closes run before the process exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	outputDir := flag.String("output-dir", "reports", "Output directory for generated files")
	preset := flag.String("preset", "week", "Report period (day, week, month)")
	date := flag.String("date", "", "Reference date for the preset (YYYY-MM-DD, default today)")
	start := flag.String("start", "", "Custom range start (YYYY-MM-DD), requires --end")
	end := flag.String("end", "", "Custom range end (YYYY-MM-DD), requires --start")
	account := flag.String("account", "", "Restrict to one account")
	model := flag.String("model", "", "Restrict to one model")
	title := flag.String("title", reporting.DefaultTitle, "Report title")
	subtitle := flag.String("subtitle", "", "Report subtitle (default: the date range)")
	postgresDSN := flag.String("postgres-dsn", cfg.Storage.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.Storage.ClickHouseDSN, "ClickHouse connection string")
	useFixtures := flag.Bool("use-fixtures", false, "Use in-memory demo trades instead of database")
	archive := flag.Bool("archive", false, "Store a snapshot of the report")
	flag.Parse()

	log, err := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: "pretty", Service: "report"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := context.Background()

	var st *stores.Stores
	// Fixtures use a fixed clock so output is reproducible.
	now := func() time.Time { return time.Now().UTC() }
	if *useFixtures {
		st = stores.Memory()
		if err := fixtures.Load(ctx, st.Trades); err != nil {
			return fmt.Errorf("load fixtures: %w", err)
		}
		demo := fixtures.Trades()
		last := demo[len(demo)-1].Date
		now = func() time.Time { return last.Add(18 * time.Hour) }
	} else {
		cfg.Storage.PostgresDSN = *postgresDSN
		cfg.Storage.ClickHouseDSN = *clickhouseDSN
		cfg.Storage.UseMemory = false
		st, err = stores.Open(ctx, cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("open stores: %w", err)
		}
	}
	defer st.Close()

	rng, err := resolveRange(*preset, *date, *start, *end, now())
	if err != nil {
		return err
	}

	report, err := reporting.NewBuilder(st.Trades).WithClock(now).Build(ctx, reporting.Request{
		Range:     rng,
		Title:     *title,
		Subtitle:  *subtitle,
		AccountID: *account,
		ModelID:   *model,
	})
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if err := writeOutputs(*outputDir, report); err != nil {
		return err
	}

	if *archive {
		if err := reporting.Archive(ctx, st.Snapshots, report); err != nil {
			return fmt.Errorf("archive report: %w", err)
		}
		log.Info().Str("report_id", report.ID).Msg("report archived")
	}

	fmt.Println("Report generated successfully:")
	fmt.Printf("  - %s/REPORT.md\n", *outputDir)
	fmt.Printf("  - %s/TRADES.csv\n", *outputDir)
	fmt.Printf("  - %s/STATS.csv\n", *outputDir)
	return nil
}

// resolveRange prefers an explicit start/end pair over the preset.
func resolveRange(preset, date, start, end string, now time.Time) (reporting.Range, error) {
	if start != "" || end != "" {
		if start == "" || end == "" {
			return reporting.Range{}, fmt.Errorf("--start and --end must be given together")
		}
		s, err := domain.ParseDate(start)
		if err != nil {
			return reporting.Range{}, fmt.Errorf("--start: %w", err)
		}
		e, err := domain.ParseDate(end)
		if err != nil {
			return reporting.Range{}, fmt.Errorf("--end: %w", err)
		}
		return reporting.CustomRange(s, e)
	}

	ref := now
	if date != "" {
		d, err := domain.ParseDate(date)
		if err != nil {
			return reporting.Range{}, fmt.Errorf("--date: %w", err)
		}
		ref = d
	}
	rng, ok := reporting.ParsePreset(preset, ref)
	if !ok {
		return reporting.Range{}, fmt.Errorf("unknown preset %q", preset)
	}
	return rng, nil
}

func writeOutputs(dir string, r *reporting.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tradesCSV, err := reporting.RenderTradesCSV(r.Trades)
	if err != nil {
		return err
	}

	files := map[string]string{
		"REPORT.md":  reporting.RenderMarkdown(r),
		"TRADES.csv": tradesCSV,
		"STATS.csv":  reporting.RenderStatsCSV(r.Stats),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
