package clickhouse

import (
	"context"
	"fmt"
	"time"

	"trade-journal/internal/domain"
	"trade-journal/internal/observability"
	"trade-journal/internal/storage"
)

// ReportSnapshotStore implements storage.ReportSnapshotStore using ClickHouse.
type ReportSnapshotStore struct {
	conn *Conn
}

// NewReportSnapshotStore creates a new ReportSnapshotStore.
func NewReportSnapshotStore(conn *Conn) *ReportSnapshotStore {
	return &ReportSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ReportSnapshotStore = (*ReportSnapshotStore)(nil)

const snapshotColumns = `
	report_id, generated_at, title, account_id, model_id,
	start_date, end_date, total_trades, total_pl, win_rate,
	profit_factor, max_drawdown, sharpe, expectancy`

// Insert adds a new snapshot. Returns ErrDuplicateKey if report_id exists.
func (s *ReportSnapshotStore) Insert(ctx context.Context, snap *domain.ReportSnapshot) error {
	if snap == nil || snap.ReportID == "" {
		return storage.ErrInvalidInput
	}

	// ReplacingMergeTree would silently replace; keep insert-once semantics.
	exists, err := s.exists(ctx, snap.ReportID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	query := `INSERT INTO report_snapshots (` + snapshotColumns + `) VALUES (
		?, ?, ?, ?, ?,
		?, ?, ?, ?, ?,
		?, ?, ?, ?
	)`

	err = s.conn.Exec(ctx, query,
		snap.ReportID, snap.GeneratedAt.UTC(), snap.Title, snap.AccountID, snap.ModelID,
		snap.StartDate, snap.EndDate, uint32(snap.TotalTrades), snap.TotalPL, snap.WinRate,
		snap.ProfitFactor, snap.MaxDrawdown, snap.Sharpe, snap.Expectancy,
	)
	if err != nil {
		return fmt.Errorf("insert report snapshot: %w", err)
	}
	return nil
}

// GetRecent retrieves up to limit snapshots, newest first.
func (s *ReportSnapshotStore) GetRecent(ctx context.Context, limit int) (snaps []*domain.ReportSnapshot, err error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}
	start := time.Now()
	defer func() {
		observability.RecordDBQuery("clickhouse", "recent_snapshots", time.Since(start).Seconds(), err)
	}()

	query := `SELECT ` + snapshotColumns + `
		FROM report_snapshots FINAL
		ORDER BY generated_at DESC, report_id ASC
		LIMIT ?`

	rows, err := s.conn.Query(ctx, query, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query recent snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetByAccount retrieves all snapshots for an account, newest first.
func (s *ReportSnapshotStore) GetByAccount(ctx context.Context, accountID string) ([]*domain.ReportSnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM report_snapshots FINAL
		WHERE account_id = ?
		ORDER BY generated_at DESC, report_id ASC`

	rows, err := s.conn.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots by account: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// exists checks if a snapshot with the given id exists.
func (s *ReportSnapshotStore) exists(ctx context.Context, reportID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count(*) FROM report_snapshots FINAL WHERE report_id = ?`, reportID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// chRows is the subset of driver.Rows used for scanning.
type chRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSnapshots(rows chRows) ([]*domain.ReportSnapshot, error) {
	snapshots := make([]*domain.ReportSnapshot, 0)

	for rows.Next() {
		var snap domain.ReportSnapshot
		var totalTrades uint32
		var generatedAt, startDate, endDate time.Time

		err := rows.Scan(
			&snap.ReportID, &generatedAt, &snap.Title, &snap.AccountID, &snap.ModelID,
			&startDate, &endDate, &totalTrades, &snap.TotalPL, &snap.WinRate,
			&snap.ProfitFactor, &snap.MaxDrawdown, &snap.Sharpe, &snap.Expectancy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		snap.GeneratedAt = generatedAt.UTC()
		snap.StartDate = domain.CalendarDate(startDate)
		snap.EndDate = domain.CalendarDate(endDate)
		snap.TotalTrades = int(totalTrades)
		snapshots = append(snapshots, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}
