package memory

import (
	"context"
	"sync"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
)

// TradeStore is an in-memory implementation of storage.TradeStore.
type TradeStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Trade // keyed by id
}

// NewTradeStore creates a new in-memory trade store.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		data: make(map[string]*domain.Trade),
	}
}

// Insert adds a new trade. Returns ErrDuplicateKey if id exists.
func (s *TradeStore) Insert(_ context.Context, t *domain.Trade) error {
	if err := validateTrade(t); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[t.ID] = t.Clone()
	return nil
}

// InsertBulk adds multiple trades atomically. Fails entire batch on any duplicate.
func (s *TradeStore) InsertBulk(_ context.Context, trades []*domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(trades))

	// First pass: validate and check duplicates (existing + intra-batch)
	for _, t := range trades {
		if err := validateTrade(t); err != nil {
			return err
		}
		if _, exists := s.data[t.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[t.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[t.ID] = struct{}{}
	}

	for _, t := range trades {
		s.data[t.ID] = t.Clone()
	}

	return nil
}

// GetByID retrieves a trade by its ID. Returns ErrNotFound if not exists.
func (s *TradeStore) GetByID(_ context.Context, id string) (*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return t.Clone(), nil
}

// Query retrieves trades matching filter in chronological order.
func (s *TradeStore) Query(_ context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Trade, 0)
	for _, t := range s.data {
		if filter.Matches(t) {
			result = append(result, t.Clone())
		}
	}

	return domain.SortChronological(result), nil
}

// Delete removes a trade. Returns ErrNotFound if not exists.
func (s *TradeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// Len returns the number of stored trades.
func (s *TradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func validateTrade(t *domain.Trade) error {
	if t == nil || t.ID == "" || t.Date.IsZero() || !t.Direction.IsValid() {
		return storage.ErrInvalidInput
	}
	return nil
}

var _ storage.TradeStore = (*TradeStore)(nil)
