package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
)

func ptr[T any](v T) *T {
	return &v
}

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTrade(id, date string, netPL float64) *domain.Trade {
	return &domain.Trade{
		ID:        id,
		Date:      day(date),
		Pair:      "EURUSD",
		Direction: domain.DirectionLong,
		NetPL:     netPL,
		CreatedAt: day(date).Add(9 * time.Hour),
	}
}

func TestTradeStore_InsertAndGet(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	trade := newTrade("trade1", "2024-01-02", 125.5)
	trade.RMultiple = ptr(1.5)

	if err := store.Insert(ctx, trade); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "trade1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.NetPL != 125.5 {
		t.Errorf("NetPL mismatch: got %f, want %f", got.NetPL, 125.5)
	}
	if got.RMultiple == nil || *got.RMultiple != 1.5 {
		t.Errorf("RMultiple mismatch: got %v", got.RMultiple)
	}
}

func TestTradeStore_CopyIsolation(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	trade := newTrade("trade1", "2024-01-02", 10)
	trade.RMultiple = ptr(1.0)
	if err := store.Insert(ctx, trade); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	*trade.RMultiple = 99
	trade.NetPL = -1

	got, _ := store.GetByID(ctx, "trade1")
	if got.NetPL != 10 || *got.RMultiple != 1 {
		t.Errorf("stored trade changed through caller pointer: %+v", got)
	}

	got.NetPL = 500
	again, _ := store.GetByID(ctx, "trade1")
	if again.NetPL != 10 {
		t.Errorf("stored trade changed through returned pointer: %f", again.NetPL)
	}
}

func TestTradeStore_DuplicateKey(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	trade := newTrade("trade1", "2024-01-02", 10)

	if err := store.Insert(ctx, trade); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, trade)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestTradeStore_InvalidInput(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	noDirection := newTrade("t1", "2024-01-02", 10)
	noDirection.Direction = ""

	for name, tr := range map[string]*domain.Trade{
		"nil":          nil,
		"no id":        newTrade("", "2024-01-02", 1),
		"no date":      {ID: "t2", Direction: domain.DirectionShort},
		"no direction": noDirection,
	} {
		if err := store.Insert(ctx, tr); !errors.Is(err, storage.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestTradeStore_NotFound(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "nonexistent"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestTradeStore_InsertBulk(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	trades := []*domain.Trade{
		newTrade("t1", "2024-01-01", 10),
		newTrade("t2", "2024-01-02", -5),
		newTrade("t3", "2024-01-03", 7),
	}

	if err := store.InsertBulk(ctx, trades); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	if store.Len() != 3 {
		t.Errorf("Expected 3 trades, got %d", store.Len())
	}
}

func TestTradeStore_InsertBulkAtomic(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	if err := store.Insert(ctx, newTrade("t2", "2024-01-02", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	batch := []*domain.Trade{
		newTrade("t1", "2024-01-01", 10),
		newTrade("t2", "2024-01-02", -5),
	}
	if err := store.InsertBulk(ctx, batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
	if _, err := store.GetByID(ctx, "t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected batch to be rejected entirely, got %v", err)
	}

	intra := []*domain.Trade{
		newTrade("t5", "2024-01-01", 10),
		newTrade("t5", "2024-01-02", -5),
	}
	if err := store.InsertBulk(ctx, intra); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey for intra-batch duplicate, got %v", err)
	}
}

func TestTradeStore_Query(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	a := newTrade("a", "2024-01-03", 10)
	a.AccountID = "acc1"
	a.ModelID = "orb"
	b := newTrade("b", "2024-01-01", -5)
	b.AccountID = "acc1"
	c := newTrade("c", "2024-01-02", 7)
	c.AccountID = "acc2"
	d := newTrade("d", "2024-02-01", 3)
	d.AccountID = "acc1"

	if err := store.InsertBulk(ctx, []*domain.Trade{a, b, c, d}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	all, err := store.Query(ctx, domain.TradeFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	ids := ""
	for _, tr := range all {
		ids += tr.ID
	}
	if ids != "bcad" {
		t.Errorf("Expected chronological order bcad, got %s", ids)
	}

	filter := domain.TradeFilter{AccountID: "acc1"}.WithRange(day("2024-01-01"), day("2024-01-31"))
	got, err := store.Query(ctx, filter)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("Unexpected filtered result: %d trades", len(got))
	}

	byModel, _ := store.Query(ctx, domain.TradeFilter{ModelID: "orb"})
	if len(byModel) != 1 || byModel[0].ID != "a" {
		t.Errorf("Expected only trade a for model orb, got %d trades", len(byModel))
	}

	none, _ := store.Query(ctx, domain.TradeFilter{AccountID: "missing"})
	if none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", none)
	}
}

func TestTradeStore_Delete(t *testing.T) {
	store := NewTradeStore()
	ctx := context.Background()

	if err := store.Insert(ctx, newTrade("t1", "2024-01-01", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, "t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
