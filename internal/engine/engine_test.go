package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/service"
)

// fakeStore is an in-memory HistoryStore for engine tests.
type fakeStore struct {
	records []model.PurchaseRecord
	stats   []service.ItemStats
	readErr error
	statErr error
}

var _ service.HistoryStore = (*fakeStore)(nil)

func (f *fakeStore) Append(_ context.Context, record model.PurchaseRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeStore) AppendBatch(_ context.Context, records []model.PurchaseRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeStore) ReadAll(_ context.Context) ([]model.PurchaseRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.records, nil
}

func (f *fakeStore) ItemStats(_ context.Context) ([]service.ItemStats, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	return f.stats, nil
}

func (f *fakeStore) Count(_ context.Context) (int, error) {
	return len(f.records), nil
}

func record(name string, day int) model.PurchaseRecord {
	return model.NewPurchaseRecord(name, "", nil, time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC))
}

// newTestEngine pins the clock so staleness math is reproducible.
func newTestEngine(store service.HistoryStore, now time.Time) *Engine {
	e := New(store)
	e.now = func() time.Time { return now }
	return e
}

func TestGenerateEmptyHistoryFallsBackToDefaults(t *testing.T) {
	e := newTestEngine(&fakeStore{}, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	suggestions := e.Generate(context.Background(), nil, 10, time.Time{})

	require.Len(t, suggestions, 5)
	assert.Equal(t, []string{"milk", "bread", "eggs", "bananas", "toilet paper"}, suggestions.Names())
	for _, s := range suggestions {
		assert.NoError(t, s.Validate())
	}
}

func TestGenerateDefaultsRespectCurrentList(t *testing.T) {
	e := newTestEngine(&fakeStore{}, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	suggestions := e.Generate(context.Background(), []string{"Milk", " TOILET PAPER "}, 10, time.Time{})

	require.Len(t, suggestions, 3)
	assert.Equal(t, []string{"bread", "eggs", "bananas"}, suggestions.Names())
	assert.NotContains(t, suggestions.Names(), "milk")
	assert.NotContains(t, suggestions.Names(), "toilet paper")
}

func TestGenerateStoreFailureDegradesToDefaults(t *testing.T) {
	store := &fakeStore{readErr: errors.New("disk on fire")}
	e := newTestEngine(store, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	suggestions := e.Generate(context.Background(), nil, 10, time.Time{})

	require.Len(t, suggestions, 5, "a broken store must not break suggestions")
}

func TestGenerateRespectsMaxSuggestions(t *testing.T) {
	e := newTestEngine(&fakeStore{}, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	assert.Len(t, e.Generate(context.Background(), nil, 2, time.Time{}), 2)
	assert.Empty(t, e.Generate(context.Background(), nil, 0, time.Time{}))
	assert.Empty(t, e.Generate(context.Background(), nil, -3, time.Time{}))
}

func TestGenerateNeverSuggestsListedItems(t *testing.T) {
	store := &fakeStore{records: []model.PurchaseRecord{
		record("milk", 7), record("milk", 14), record("milk", 18),
		record("bread", 2), record("bread", 9),
	}}
	e := newTestEngine(store, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	suggestions := e.Generate(context.Background(), []string{"Milk"}, 10, time.Time{})

	assert.NotContains(t, suggestions.Names(), "milk")
}

func TestGenerateDedupePrefersEarlierSignal(t *testing.T) {
	// milk qualifies for both the day-of-week signal (2 Saturdays) and
	// the frequency signal; the day-of-week result must win the dedup.
	store := &fakeStore{records: []model.PurchaseRecord{
		record("milk", 7), record("milk", 14), // Saturdays
		record("bread", 2),
	}}
	target := time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC) // Saturday
	e := newTestEngine(store, target)

	suggestions := e.Generate(context.Background(), nil, 10, target)

	milkSeen := 0
	for _, s := range suggestions {
		if s.ItemName == "milk" {
			milkSeen++
			assert.Equal(t, model.ReasonDaySpecific, s.Reason)
		}
	}
	assert.Equal(t, 1, milkSeen)
}

func TestGenerateSortedByConfidenceDescending(t *testing.T) {
	store := &fakeStore{records: []model.PurchaseRecord{
		record("milk", 7), record("milk", 14),
		record("bread", 2), record("bread", 9), record("bread", 16),
		record("eggs", 3),
	}}
	e := newTestEngine(store, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	suggestions := e.Generate(context.Background(), nil, 10, time.Time{})

	require.NotEmpty(t, suggestions)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Confidence, suggestions[i].Confidence,
			"suggestions out of order at %d: %v", i, suggestions.Names())
	}
}

func TestGenerateRecipeWorksWithEmptyHistory(t *testing.T) {
	e := newTestEngine(&fakeStore{}, time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC))

	suggestions := e.Generate(context.Background(), []string{"pasta"}, 10, time.Time{})

	// Recipe complements, capped at two, beat the default fallback.
	require.Len(t, suggestions, 2)
	assert.Equal(t, []string{"tomato sauce", "parmesan cheese"}, suggestions.Names())
	for _, s := range suggestions {
		assert.Equal(t, model.ReasonRecipeCompletion, s.Reason)
	}
}
