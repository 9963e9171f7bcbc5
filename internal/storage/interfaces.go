package storage

import (
	"context"

	"trade-journal/internal/domain"
)

// TradeStore provides access to trades storage.
type TradeStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if id exists.
	Insert(ctx context.Context, t *domain.Trade) error

	// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, trades []*domain.Trade) error

	// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.Trade, error)

	// Query retrieves trades matching filter, ordered by date ASC, created_at ASC, id ASC.
	Query(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, error)

	// Delete removes a trade. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, id string) error
}

// ReportSnapshotStore provides access to report_snapshots storage.
type ReportSnapshotStore interface {
	// Insert adds a new snapshot. Returns ErrDuplicateKey if report_id exists.
	Insert(ctx context.Context, s *domain.ReportSnapshot) error

	// GetRecent retrieves the latest snapshots, newest first.
	GetRecent(ctx context.Context, limit int) ([]*domain.ReportSnapshot, error)

	// GetByAccount retrieves all snapshots for an account, newest first.
	GetByAccount(ctx context.Context, accountID string) ([]*domain.ReportSnapshot, error)
}
