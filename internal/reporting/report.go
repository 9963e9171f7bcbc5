package reporting

import (
	"time"

	"trade-journal/internal/domain"
)

// Report is a period summary of the trading journal.
// Stats and Streaks are nil when the period has no trades; Trades is never nil.
type Report struct {
	// Metadata
	ID          string
	Title       string
	Subtitle    string
	AccountID   string
	ModelID     string
	Start       time.Time
	End         time.Time
	GeneratedAt time.Time

	// Summary
	Stats   *domain.Stats
	Streaks *domain.StreakStats

	// Breakdown sections
	Instruments []domain.GroupStats
	Monthly     []domain.MonthlyPoint

	// Trade listing, chronological
	Trades []*domain.Trade
}

// Empty reports whether the period had no trades.
func (r *Report) Empty() bool {
	return len(r.Trades) == 0
}
