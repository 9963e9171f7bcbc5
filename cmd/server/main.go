// Package main runs the journal HTTP API: trade CRUD, CSV import, analytics
// views and report generation backed by the configured stores.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"trade-journal/internal/analytics"
	"trade-journal/internal/api"
	"trade-journal/internal/config"
	"trade-journal/internal/fixtures"
	"trade-journal/internal/ingest"
	"trade-journal/internal/logger"
	"trade-journal/internal/reporting"
	"trade-journal/internal/stores"
)

func main() {
	if err := run(); err != nil {
		l := zerolog.New(os.Stderr)
		l.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

// run does the work of main so that deferred closes run before the process exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override env configuration.
	addr := flag.String("addr", cfg.Server.Addr, "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", cfg.Storage.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.Storage.ClickHouseDSN, "ClickHouse connection string (report snapshots)")
	useMemory := flag.Bool("use-memory", cfg.Storage.UseMemory, "Use in-memory storage instead of PostgreSQL")
	useFixtures := flag.Bool("use-fixtures", false, "Load demo trades into the store on startup")
	logLevel := flag.String("log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg.Server.Addr = *addr
	cfg.Storage.PostgresDSN = *postgresDSN
	cfg.Storage.ClickHouseDSN = *clickhouseDSN
	cfg.Storage.UseMemory = *useMemory || *useFixtures
	cfg.Logging.Level = *logLevel

	log, err := logger.Init(logger.Config{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		FileEnabled:   cfg.Logging.FileEnabled,
		FilePath:      cfg.Logging.FilePath,
		RotationSize:  cfg.Logging.RotationSize,
		RetentionDays: cfg.Logging.RetentionDays,
		Service:       "server",
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := stores.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer st.Close()

	if *useFixtures {
		if err := fixtures.Load(ctx, st.Trades); err != nil {
			return fmt.Errorf("load fixtures: %w", err)
		}
		log.Info().Int("trades", len(fixtures.Trades())).Msg("demo trades loaded")
	}

	opts := analytics.DefaultOptions()
	opts.RollingWindow = cfg.Analytics.RollingWindow
	opts.HeatmapDays = cfg.Analytics.HeatmapDays
	opts.TopMistakes = cfg.Analytics.TopMistakes

	server := api.New(api.Config{
		Addr:         cfg.Server.Addr,
		Log:          log,
		Analytics:    analytics.NewService(st.Trades, log, opts),
		Trades:       st.Trades,
		Snapshots:    st.Snapshots,
		Reports:      reporting.NewBuilder(st.Trades),
		Importer:     ingest.NewImporter(st.Trades, log),
		CORSOrigins:  cfg.Server.CORSOrigins,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	case serveErr = <-errCh:
	}
	// Restore default signal handling so a second signal exits immediately.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
	return serveErr
}
