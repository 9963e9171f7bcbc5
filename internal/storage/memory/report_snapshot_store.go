package memory

import (
	"context"
	"sort"
	"sync"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
)

// ReportSnapshotStore is an in-memory implementation of storage.ReportSnapshotStore.
type ReportSnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ReportSnapshot // keyed by report_id
}

// NewReportSnapshotStore creates a new in-memory report snapshot store.
func NewReportSnapshotStore() *ReportSnapshotStore {
	return &ReportSnapshotStore{
		data: make(map[string]*domain.ReportSnapshot),
	}
}

// Insert adds a new snapshot. Returns ErrDuplicateKey if report_id exists.
func (s *ReportSnapshotStore) Insert(_ context.Context, snap *domain.ReportSnapshot) error {
	if snap == nil || snap.ReportID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.ReportID]; exists {
		return storage.ErrDuplicateKey
	}

	snapCopy := *snap
	s.data[snap.ReportID] = &snapCopy
	return nil
}

// GetRecent retrieves up to limit snapshots, newest first.
func (s *ReportSnapshotStore) GetRecent(_ context.Context, limit int) ([]*domain.ReportSnapshot, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.collect(func(*domain.ReportSnapshot) bool { return true })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetByAccount retrieves all snapshots for an account, newest first.
func (s *ReportSnapshotStore) GetByAccount(_ context.Context, accountID string) ([]*domain.ReportSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(snap *domain.ReportSnapshot) bool {
		return snap.AccountID == accountID
	}), nil
}

// collect copies matching snapshots ordered by generated_at DESC, report_id ASC.
// Caller must hold the read lock.
func (s *ReportSnapshotStore) collect(match func(*domain.ReportSnapshot) bool) []*domain.ReportSnapshot {
	result := make([]*domain.ReportSnapshot, 0)
	for _, snap := range s.data {
		if match(snap) {
			snapCopy := *snap
			result = append(result, &snapCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].GeneratedAt.Equal(result[j].GeneratedAt) {
			return result[i].GeneratedAt.After(result[j].GeneratedAt)
		}
		return result[i].ReportID < result[j].ReportID
	})
	return result
}

var _ storage.ReportSnapshotStore = (*ReportSnapshotStore)(nil)
