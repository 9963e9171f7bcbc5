package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trade-journal/internal/domain"
	"trade-journal/internal/metrics"
	"trade-journal/internal/observability"
	"trade-journal/internal/storage"
)

// DefaultTitle is used when a request carries no title.
const DefaultTitle = "Trading Report"

// Request selects the trades of a report.
type Request struct {
	Range
	Title     string
	Subtitle  string
	AccountID string
	ModelID   string
}

// Builder produces reports from stored trades.
type Builder struct {
	tradeStore storage.TradeStore
	now        func() time.Time // Injectable clock for deterministic output
	newID      func() string
}

// NewBuilder creates a new report builder.
func NewBuilder(tradeStore storage.TradeStore) *Builder {
	return &Builder{
		tradeStore: tradeStore,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.NewString() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithIDFunc sets the report ID generator.
func (b *Builder) WithIDFunc(newID func() string) *Builder {
	b.newID = newID
	return b
}

// Build produces a report for the requested range.
// An empty range yields a valid report with nil Stats.
func (b *Builder) Build(ctx context.Context, req Request) (*Report, error) {
	started := time.Now()

	rng, err := CustomRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	filter := domain.TradeFilter{AccountID: req.AccountID, ModelID: req.ModelID}.WithRange(rng.Start, rng.End)
	trades, err := b.tradeStore.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	trades = metrics.SortChronological(trades)

	title := req.Title
	if title == "" {
		title = DefaultTitle
	}
	subtitle := req.Subtitle
	if subtitle == "" {
		subtitle = rng.Label()
	}

	report := &Report{
		ID:          b.newID(),
		Title:       title,
		Subtitle:    subtitle,
		AccountID:   req.AccountID,
		ModelID:     req.ModelID,
		Start:       rng.Start,
		End:         rng.End,
		GeneratedAt: b.now(),
		Stats:       metrics.ComputeStats(trades),
		Instruments: metrics.ByInstrument(trades),
		Monthly:     metrics.MonthlyPL(trades),
		Trades:      trades,
	}
	if len(trades) > 0 {
		streaks := metrics.Streaks(trades)
		report.Streaks = &streaks
	}

	observability.RecordReport(time.Since(started).Seconds())
	return report, nil
}
