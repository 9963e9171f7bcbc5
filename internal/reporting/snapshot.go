package reporting

import (
	"context"
	"fmt"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
)

// Snapshot summarises a report for the archive.
func Snapshot(r *Report) *domain.ReportSnapshot {
	snap := &domain.ReportSnapshot{
		ReportID:    r.ID,
		GeneratedAt: r.GeneratedAt,
		Title:       r.Title,
		AccountID:   r.AccountID,
		ModelID:     r.ModelID,
		StartDate:   r.Start,
		EndDate:     r.End,
	}
	if s := r.Stats; s != nil {
		snap.TotalTrades = s.TotalTrades
		snap.TotalPL = s.TotalPL
		snap.WinRate = s.WinRate
		snap.ProfitFactor = s.ProfitFactor
		snap.MaxDrawdown = s.MaxDrawdown
		snap.Sharpe = s.Sharpe
		snap.Expectancy = s.Expectancy
	}
	return snap
}

// Archive stores the snapshot of r.
func Archive(ctx context.Context, store storage.ReportSnapshotStore, r *Report) error {
	if err := store.Insert(ctx, Snapshot(r)); err != nil {
		return fmt.Errorf("archive report %s: %w", r.ID, err)
	}
	return nil
}
