package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpaulson/cartful/internal/model"
)

func TestAssociationSuggestCoPurchasedItems(t *testing.T) {
	history := []model.PurchaseRecord{
		// peanut butter and jelly share three trips
		record("peanut butter", 1), record("jelly", 1),
		record("peanut butter", 8), record("jelly", 8),
		record("peanut butter", 15), record("jelly", 15),
		// bread tags along only twice, below the threshold
		record("bread", 1), record("bread", 8),
	}

	suggestions := NewAssociation().Suggest(NewInput(history, []string{"Peanut Butter"}, time.Time{}))

	require.Len(t, suggestions, 1)
	assert.Equal(t, "jelly", suggestions[0].ItemName)
	assert.Equal(t, model.ReasonUsuallyBuyTogether, suggestions[0].Reason)
	assert.InDelta(t, 0.65, suggestions[0].Confidence, 0.001)
	// The related item keeps the user's original spelling
	assert.Equal(t, []string{"Peanut Butter"}, suggestions[0].RelatedItems)
}

func TestAssociationSuggestConfidenceGrowsWithCount(t *testing.T) {
	var history []model.PurchaseRecord
	for day := 1; day <= 9; day++ {
		history = append(history, record("pasta", day), record("tomato sauce", day))
	}

	suggestions := NewAssociation().Suggest(NewInput(history, []string{"pasta"}, time.Time{}))

	require.Len(t, suggestions, 1)
	// 9 shared trips: 0.5 + 0.05*9 = 0.95, the ceiling
	assert.InDelta(t, 0.95, suggestions[0].Confidence, 0.001)
}

func TestAssociationSuggestStrongestPairWinsDedup(t *testing.T) {
	history := []model.PurchaseRecord{
		// chips co-occur with salsa on four trips, with beer on three
		record("salsa", 1), record("chips", 1), record("beer", 1),
		record("salsa", 8), record("chips", 8), record("beer", 8),
		record("salsa", 15), record("chips", 15), record("beer", 15),
		record("salsa", 22), record("chips", 22),
	}

	suggestions := NewAssociation().Suggest(NewInput(history, []string{"salsa", "beer"}, time.Time{}))

	names := suggestions.Names()
	require.Contains(t, names, "chips")
	for _, s := range suggestions {
		if s.ItemName == "chips" {
			// the salsa pair (4 trips) outranks the beer pair (3)
			assert.Equal(t, []string{"salsa"}, s.RelatedItems)
			assert.InDelta(t, 0.70, s.Confidence, 0.001)
		}
	}
}

func TestAssociationSuggestEmptyWithoutListOrHistory(t *testing.T) {
	history := []model.PurchaseRecord{record("milk", 1)}

	assert.Empty(t, NewAssociation().Suggest(NewInput(history, nil, time.Time{})))
	assert.Empty(t, NewAssociation().Suggest(NewInput(nil, []string{"milk"}, time.Time{})))
}

func TestAssociationSuggestSkipsExcludedAndSelf(t *testing.T) {
	history := []model.PurchaseRecord{
		record("milk", 1), record("cookies", 1),
		record("milk", 8), record("cookies", 8),
		record("milk", 15), record("cookies", 15),
	}

	// cookies are already on the list, so they must not come back
	suggestions := NewAssociation().Suggest(NewInput(history, []string{"milk", "cookies"}, time.Time{}))

	assert.Empty(t, suggestions)
}
