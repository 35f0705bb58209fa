package engine

import "github.com/jpaulson/cartful/internal/model"

// defaultConfidence is deliberately moderate: the defaults exist so a
// first-time user never sees an empty screen, not because we know
// anything about them.
const defaultConfidence = 0.5

// defaultSuggestions returns the fixed fallback list used when no signal
// produced anything, minus items already on the current list. Fresh
// copies each call; callers own the result.
func defaultSuggestions(excluded map[string]bool) model.Suggestions {
	all := model.Suggestions{
		{ItemName: "milk", Category: "Dairy", Confidence: defaultConfidence, Reason: model.ReasonFrequentlyPurchased},
		{ItemName: "bread", Category: "Bakery", Confidence: defaultConfidence, Reason: model.ReasonFrequentlyPurchased},
		{ItemName: "eggs", Category: "Dairy", Confidence: defaultConfidence, Reason: model.ReasonFrequentlyPurchased},
		{ItemName: "bananas", Category: "Produce", Confidence: defaultConfidence, Reason: model.ReasonFrequentlyPurchased},
		{ItemName: "toilet paper", Category: "Household", Confidence: defaultConfidence, Reason: model.ReasonFrequentlyPurchased},
	}

	suggestions := make(model.Suggestions, 0, len(all))
	for _, suggestion := range all {
		if excluded[model.NormalizeItemName(suggestion.ItemName)] {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions
}
