package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpaulson/cartful/internal/model"
)

// March 2026: the 7th, 14th and 21st are Saturdays, the 18th a Wednesday.

func TestDayOfWeekSuggestWeeklyRoutine(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 7),  // Saturday
		record("milk", 14), // Saturday
		record("milk", 18), // Wednesday
		record("bread", 18),
	}
	target := time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC) // Saturday

	suggestions := NewDayOfWeek().Suggest(NewInput(history, nil, target))

	require.Len(t, suggestions, 1, "bread has no Saturday purchases and must not appear")
	assert.Equal(t, "milk", suggestions[0].ItemName)
	assert.Equal(t, model.ReasonDaySpecific, suggestions[0].Reason)
	// 2 of 3 purchases on Saturdays, bought 3 days ago so no staleness boost
	assert.InDelta(t, 0.5+0.4*2.0/3.0, suggestions[0].Confidence, 0.001)
}

func TestDayOfWeekSuggestStalenessBoost(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 1), // Sunday
		record("milk", 8), // Sunday
	}
	target := time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC) // Sunday, 14 days later

	suggestions := NewDayOfWeek().Suggest(NewInput(history, nil, target))

	require.Len(t, suggestions, 1)
	// Every purchase on Sundays caps at 0.9, then the staleness boost
	// applies because the usual weekly cycle has elapsed twice over.
	assert.InDelta(t, 1.0, suggestions[0].Confidence, 0.001)
}

func TestDayOfWeekSuggestRequiresTwoPurchases(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 7), // one Saturday is a coincidence, not a routine
	}
	target := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	suggestions := NewDayOfWeek().Suggest(NewInput(history, nil, target))
	assert.Empty(t, suggestions)
}

func TestDayOfWeekSuggestExcludesListedItems(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 7),
		record("milk", 14),
	}
	target := time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC)

	suggestions := NewDayOfWeek().Suggest(NewInput(history, []string{"Milk"}, target))
	assert.Empty(t, suggestions)
}

func TestDayOfWeekSuggestSortsByConfidence(t *testing.T) {
	history := []model.PurchaseRecord{
		// milk: 3 of 3 on Saturdays
		record("milk", 7), record("milk", 14), record("milk", 21),
		// bread: 2 of 4 on Saturdays
		record("bread", 7), record("bread", 14), record("bread", 18), record("bread", 25),
	}
	target := time.Date(2026, 3, 28, 9, 0, 0, 0, time.UTC) // Saturday

	suggestions := NewDayOfWeek().Suggest(NewInput(history, nil, target))

	require.Len(t, suggestions, 2)
	assert.Equal(t, []string{"milk", "bread"}, suggestions.Names())
	assert.Greater(t, suggestions[0].Confidence, suggestions[1].Confidence)
}
