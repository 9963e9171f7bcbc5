// Package stores opens the storage backends selected by configuration.
package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"trade-journal/internal/config"
	"trade-journal/internal/storage"
	chstore "trade-journal/internal/storage/clickhouse"
	"trade-journal/internal/storage/memory"
	"trade-journal/internal/storage/migrations"
	pgstore "trade-journal/internal/storage/postgres"
)

// ErrNoDatabase is returned when neither memory mode nor a Postgres DSN is configured.
var ErrNoDatabase = errors.New("postgres dsn is required unless memory storage is enabled")

// Stores holds the storage implementations used by the application.
type Stores struct {
	Trades    storage.TradeStore
	Snapshots storage.ReportSnapshotStore

	closers []func()
}

// Close releases every open connection.
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Memory returns in-memory stores.
func Memory() *Stores {
	return &Stores{
		Trades:    memory.NewTradeStore(),
		Snapshots: memory.NewReportSnapshotStore(),
	}
}

// Open creates stores from cfg. Trades live in Postgres; report snapshots live in
// ClickHouse when a DSN is set and in memory otherwise.
func Open(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*Stores, error) {
	if cfg.UseMemory {
		log.Info().Msg("using in-memory storage")
		return Memory(), nil
	}
	if cfg.PostgresDSN == "" {
		return nil, ErrNoDatabase
	}

	s := &Stores{}

	pool, err := pgstore.NewPoolWithOptions(ctx, cfg.PostgresDSN, pgstore.PoolOptions{
		MaxConns:        cfg.MaxConns,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
	})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, pool.Close)

	if cfg.AutoMigrate {
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}
		log.Info().Strs("files", applied).Msg("postgres migrations applied")
	}
	s.Trades = pgstore.NewTradeStore(pool)

	if cfg.ClickHouseDSN == "" {
		log.Warn().Msg("no clickhouse dsn, report snapshots are kept in memory")
		s.Snapshots = memory.NewReportSnapshotStore()
		return s, nil
	}

	var conn *chstore.Conn
	if cfg.AutoMigrate {
		conn, err = migrations.RunClickhouseMigrations(ctx, cfg.ClickHouseDSN)
	} else {
		conn, err = chstore.NewConn(ctx, cfg.ClickHouseDSN)
	}
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	s.closers = append(s.closers, func() { conn.Close() })
	s.Snapshots = chstore.NewReportSnapshotStore(conn)

	log.Info().Bool("clickhouse", true).Msg("database storage ready")
	return s, nil
}
