package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"trade-journal/internal/domain"
	"trade-journal/internal/observability"
	"trade-journal/internal/storage"
)

// Result summarizes one import run.
type Result struct {
	Read       int         `json:"read"`
	Imported   int         `json:"imported"`
	Skipped    int         `json:"skipped"` // already present in the store
	Warnings   []Warning   `json:"warnings"`
	Rejections []Rejection `json:"-"`
}

// Importer normalizes raw records and writes new trades to a store.
// Imports are idempotent: trades whose ID already exists are skipped.
type Importer struct {
	store storage.TradeStore
	log   zerolog.Logger
	clock func() time.Time
}

// NewImporter creates an Importer writing to store.
func NewImporter(store storage.TradeStore, log zerolog.Logger) *Importer {
	return &Importer{
		store: store,
		log:   log.With().Str("component", "ingest").Logger(),
		clock: time.Now,
	}
}

// WithClock sets a custom clock used for CreatedAt stamps.
func (im *Importer) WithClock(clock func() time.Time) *Importer {
	im.clock = clock
	return im
}

// ImportCSV reads a CSV stream and imports its rows.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	raws, err := ReadCSV(r)
	if err != nil {
		observability.RecordImport("failed", 0)
		return nil, err
	}
	return im.Import(ctx, raws)
}

// Import normalizes raws and inserts the trades not yet stored.
func (im *Importer) Import(ctx context.Context, raws []RawTrade) (*Result, error) {
	batch := NormalizeAll(raws, im.clock())

	res := &Result{
		Read:       len(raws),
		Warnings:   batch.Warnings,
		Rejections: batch.Rejections,
	}
	for _, w := range batch.Warnings {
		im.log.Warn().Int("row", w.Row).Str("field", w.Field).Str("value", w.Value).Msg(w.Msg)
	}
	for _, rej := range batch.Rejections {
		im.log.Warn().Int("row", rej.Row).Err(rej.Err).Msg("record rejected")
	}

	fresh := make([]*domain.Trade, 0, len(batch.Trades))
	for _, t := range batch.Trades {
		_, err := im.store.GetByID(ctx, t.ID)
		switch {
		case err == nil:
			res.Skipped++
		case errors.Is(err, storage.ErrNotFound):
			fresh = append(fresh, t)
		default:
			observability.RecordImport("failed", 0)
			return nil, fmt.Errorf("lookup trade %s: %w", t.ID, err)
		}
	}

	if err := im.store.InsertBulk(ctx, fresh); err != nil {
		observability.RecordImport("failed", 0)
		return nil, fmt.Errorf("insert trades: %w", err)
	}
	res.Imported = len(fresh)

	observability.RecordImport("ok", res.Imported)
	im.log.Info().
		Int("read", res.Read).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Int("rejected", len(res.Rejections)).
		Int("warnings", len(res.Warnings)).
		Msg("import complete")

	return res, nil
}
