package signal

import (
	"sort"

	"github.com/jpaulson/cartful/internal/model"
)

// frequencyBase is the confidence floor for any item that was purchased
// at least once; the remaining 0.7 scales with the item's share of the
// highest purchase count seen in this call.
const frequencyBase = 0.3

// Compile-time check.
var _ Extractor = (*Frequency)(nil)

// Frequency suggests items the user buys often but hasn't listed yet.
type Frequency struct{}

// NewFrequency creates the frequency signal.
func NewFrequency() *Frequency {
	return &Frequency{}
}

// Name identifies the signal in logs.
func (f *Frequency) Name() string { return "frequency" }

// Suggest returns frequently purchased items sorted by purchase count,
// most frequent first. An empty history yields an empty result.
func (f *Frequency) Suggest(input Input) model.Suggestions {
	profiles := buildProfiles(input.History)

	candidates := make([]*itemProfile, 0, len(profiles))
	maxCount := 0
	for name, profile := range profiles {
		if input.Excluded[name] {
			continue
		}
		candidates = append(candidates, profile)
		if profile.count > maxCount {
			maxCount = profile.count
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		// Equal counts fall back to name order for deterministic output
		return candidates[i].name < candidates[j].name
	})

	suggestions := make(model.Suggestions, 0, len(candidates))
	for _, profile := range candidates {
		confidence := frequencyBase
		if maxCount > 0 {
			confidence = clamp(frequencyBase+0.7*float64(profile.count)/float64(maxCount), frequencyBase, 1.0)
		}

		suggestions = append(suggestions, model.ItemSuggestion{
			ItemName:       profile.name,
			Category:       profile.category,
			EstimatedPrice: profile.estimatedPrice(),
			Confidence:     confidence,
			Reason:         model.ReasonFrequentlyPurchased,
		})
	}

	return suggestions
}
