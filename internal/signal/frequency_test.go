package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpaulson/cartful/internal/model"
)

func record(name string, day int) model.PurchaseRecord {
	return model.NewPurchaseRecord(name, "", nil, time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC))
}

func pricedRecord(name, category string, price float64, day int) model.PurchaseRecord {
	return model.NewPurchaseRecord(name, category, &price, time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC))
}

func TestFrequencySuggestRanksByCount(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 1), record("milk", 5), record("milk", 9),
		record("bread", 2), record("bread", 6),
		record("eggs", 3),
	}

	suggestions := NewFrequency().Suggest(NewInput(history, nil, time.Time{}))

	require.Len(t, suggestions, 3)
	assert.Equal(t, []string{"milk", "bread", "eggs"}, suggestions.Names())

	assert.InDelta(t, 1.0, suggestions[0].Confidence, 0.001)
	assert.InDelta(t, 0.3+0.7*2.0/3.0, suggestions[1].Confidence, 0.001)
	assert.InDelta(t, 0.3+0.7*1.0/3.0, suggestions[2].Confidence, 0.001)

	for _, s := range suggestions {
		assert.Equal(t, model.ReasonFrequentlyPurchased, s.Reason)
	}
}

func TestFrequencySuggestExcludesListedItems(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 1), record("milk", 5),
		record("bread", 2),
	}

	suggestions := NewFrequency().Suggest(NewInput(history, []string{" MILK "}, time.Time{}))

	require.Len(t, suggestions, 1)
	assert.Equal(t, "bread", suggestions[0].ItemName)
}

func TestFrequencySuggestEmptyHistory(t *testing.T) {
	suggestions := NewFrequency().Suggest(NewInput(nil, []string{"milk"}, time.Time{}))
	assert.Empty(t, suggestions)
}

func TestFrequencySuggestEqualCountsDeterministic(t *testing.T) {
	history := []model.PurchaseRecord{
		record("zucchini", 1), record("apples", 2),
	}

	suggestions := NewFrequency().Suggest(NewInput(history, nil, time.Time{}))

	require.Len(t, suggestions, 2)
	assert.Equal(t, []string{"apples", "zucchini"}, suggestions.Names())
}

func TestFrequencySuggestCarriesProfileData(t *testing.T) {
	history := []model.PurchaseRecord{
		pricedRecord("milk", "Dairy", 3.00, 1),
		pricedRecord("milk", "Dairy", 4.00, 8),
	}

	suggestions := NewFrequency().Suggest(NewInput(history, nil, time.Time{}))

	require.Len(t, suggestions, 1)
	assert.Equal(t, "Dairy", suggestions[0].Category)
	require.NotNil(t, suggestions[0].EstimatedPrice)
	assert.InDelta(t, 3.50, *suggestions[0].EstimatedPrice, 0.001)
}
