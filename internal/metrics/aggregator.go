package metrics

import (
	"context"
	"errors"
	"fmt"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
)

// ErrNoTrades is returned when no trades are available for aggregation.
var ErrNoTrades = errors.New("no trades available for aggregation")

// ErrUnknownDimension is returned by Compare for an unsupported dimension.
var ErrUnknownDimension = errors.New("unknown comparison dimension")

// Aggregator computes statistics over trades loaded from a store.
type Aggregator struct {
	tradeStore storage.TradeStore
}

// NewAggregator creates a new metrics aggregator.
func NewAggregator(tradeStore storage.TradeStore) *Aggregator {
	return &Aggregator{tradeStore: tradeStore}
}

// Load fetches trades matching filter in chronological order.
func (a *Aggregator) Load(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	trades, err := a.tradeStore.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	return SortChronological(trades), nil
}

// ComputeStats loads trades matching filter and computes the core statistics.
// Returns ErrNoTrades if no trades match.
func (a *Aggregator) ComputeStats(ctx context.Context, filter domain.TradeFilter) (*domain.Stats, error) {
	trades, err := a.Load(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}
	return ComputeStats(trades), nil
}

// Compare loads trades matching filter and aggregates them along dimension.
// Returns ErrNoTrades if no trades match.
func (a *Aggregator) Compare(ctx context.Context, filter domain.TradeFilter, dimension string) ([]domain.GroupStats, error) {
	d, ok := ParseDimension(dimension)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
	trades, err := a.Load(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}
	return Segment(trades, d), nil
}
