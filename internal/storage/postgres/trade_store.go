package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"trade-journal/internal/domain"
	"trade-journal/internal/observability"
	"trade-journal/internal/storage"
)

// TradeStore implements storage.TradeStore using PostgreSQL.
type TradeStore struct {
	pool *Pool
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(pool *Pool) *TradeStore {
	return &TradeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

const tradeColumns = `
	id, trade_date, entry_time, pair, direction,
	net_pl, r_multiple, rule_violation, mistake_tag, grade,
	model_id, account_id,
	entry_price, exit_price, stop_loss, take_profit, notes,
	created_at`

const insertTradeQuery = `
	INSERT INTO trades (` + tradeColumns + `
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10,
		$11, $12,
		$13, $14, $15, $16, $17,
		$18
	)`

// Insert adds a new trade. Returns ErrDuplicateKey if id exists.
func (s *TradeStore) Insert(ctx context.Context, t *domain.Trade) error {
	_, err := s.pool.Exec(ctx, insertTradeQuery, tradeArgs(t)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
func (s *TradeStore) InsertBulk(ctx context.Context, trades []*domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, t := range trades {
		batch.Queue(insertTradeQuery, tradeArgs(t)...)
	}

	results := tx.SendBatch(ctx, batch)
	for range trades {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert trade in bulk: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeStore) GetByID(ctx context.Context, id string) (*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1`

	t, err := scanTrade(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trade by id: %w", err)
	}
	return t, nil
}

// Query retrieves trades matching filter, ordered by trade_date, created_at, id.
func (s *TradeStore) Query(ctx context.Context, filter domain.TradeFilter) (trades []*domain.Trade, err error) {
	start := time.Now()
	defer func() {
		observability.RecordDBQuery("postgres", "query_trades", time.Since(start).Seconds(), err)
	}()

	where, args := filterClause(filter)
	query := `SELECT ` + tradeColumns + ` FROM trades` + where +
		` ORDER BY trade_date ASC, created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// Delete removes a trade. Returns ErrNotFound if not exists.
func (s *TradeStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// filterClause builds the WHERE clause and positional args for filter.
func filterClause(filter domain.TradeFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.AccountID != "" {
		add("account_id = $%d", filter.AccountID)
	}
	if filter.ModelID != "" {
		add("model_id = $%d", filter.ModelID)
	}
	if filter.StartDate != nil {
		add("trade_date >= $%d", domain.CalendarDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		add("trade_date <= $%d", domain.CalendarDate(*filter.EndDate))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func tradeArgs(t *domain.Trade) []any {
	return []any{
		t.ID, domain.CalendarDate(t.Date), t.EntryTime, t.Pair, string(t.Direction),
		t.NetPL, t.RMultiple, t.RuleViolation, t.MistakeTag, string(t.Grade),
		t.ModelID, t.AccountID,
		t.EntryPrice, t.ExitPrice, t.StopLoss, t.TakeProfit, t.Notes,
		t.CreatedAt.UTC(),
	}
}

// scanTrade scans a single row into a Trade.
func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var t domain.Trade
	var direction, grade string

	err := row.Scan(
		&t.ID, &t.Date, &t.EntryTime, &t.Pair, &direction,
		&t.NetPL, &t.RMultiple, &t.RuleViolation, &t.MistakeTag, &grade,
		&t.ModelID, &t.AccountID,
		&t.EntryPrice, &t.ExitPrice, &t.StopLoss, &t.TakeProfit, &t.Notes,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Date = domain.CalendarDate(t.Date)
	t.CreatedAt = t.CreatedAt.UTC()
	t.Direction = domain.Direction(direction)
	t.Grade = domain.Grade(grade)
	return &t, nil
}

// scanTrades scans multiple rows into a slice of Trade.
func scanTrades(rows pgx.Rows) ([]*domain.Trade, error) {
	trades := make([]*domain.Trade, 0)

	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade row: %w", err)
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade rows: %w", err)
	}

	return trades, nil
}
