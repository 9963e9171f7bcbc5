package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage"
	"trade-journal/internal/storage/memory"
)

const journalCSV = `date,entry_time,pair,direction,net_pl,r_multiple,rule_violation,mistake_tag,grade,model,account
2024-01-02,09:31,ES,Long,250,2,no,,A,orb,acc-1
2024-01-02,10:05,ES,Short,-100,-1,yes,chased,C,orb,acc-1
2024-01-03,,NQ,Long,0,,no,,,reversal,acc-1
2024-01-04,09:45,NQ,flat,50,,,,,,acc-1
`

func fixedClock() time.Time {
	return time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
}

func TestImporter_ImportCSV(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTradeStore()
	im := NewImporter(store, zerolog.Nop()).WithClock(fixedClock)

	res, err := im.ImportCSV(ctx, strings.NewReader(journalCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Read)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, 4, res.Rejections[0].Row)
	assert.ErrorIs(t, res.Rejections[0].Err, ErrInvalidRecord)

	trades, err := store.Query(ctx, domain.TradeFilter{})
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, 250.0, trades[0].NetPL)
	assert.Equal(t, "orb", trades[0].ModelID)
	assert.True(t, trades[1].RuleViolation)
	assert.Equal(t, "chased", trades[1].MistakeTag)
	assert.Nil(t, trades[2].RMultiple)
}

func TestImporter_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTradeStore()
	im := NewImporter(store, zerolog.Nop()).WithClock(fixedClock)

	_, err := im.ImportCSV(ctx, strings.NewReader(journalCSV))
	require.NoError(t, err)

	res, err := im.ImportCSV(ctx, strings.NewReader(journalCSV))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, 3, store.Len())
}

func TestImporter_BadHeader(t *testing.T) {
	im := NewImporter(memory.NewTradeStore(), zerolog.Nop())

	_, err := im.ImportCSV(context.Background(), strings.NewReader("pair\nES\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

type brokenStore struct {
	storage.TradeStore
}

func (brokenStore) GetByID(context.Context, string) (*domain.Trade, error) {
	return nil, errors.New("connection reset")
}

func TestImporter_StoreError(t *testing.T) {
	im := NewImporter(brokenStore{}, zerolog.Nop())

	_, err := im.ImportCSV(context.Background(), strings.NewReader(journalCSV))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
