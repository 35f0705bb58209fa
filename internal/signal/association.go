package signal

import (
	"sort"

	"github.com/jpaulson/cartful/internal/model"
)

// Association tuning. Pairs need to co-occur across several trips before
// they surface; one-off coincidences stay below the threshold.
const (
	minCoOccurrences = 3
	associationFloor = 0.6
	associationCeil  = 0.95
)

// Compile-time check.
var _ Extractor = (*Association)(nil)

// Association suggests items historically bought in the same trip as
// items already on the current list. A trip is approximated as "same
// calendar date" since no true trip boundary exists in the data.
type Association struct{}

// NewAssociation creates the co-occurrence signal.
func NewAssociation() *Association {
	return &Association{}
}

// Name identifies the signal in logs.
func (a *Association) Name() string { return "association" }

// pair tracks how often a candidate item shared a trip with a list item.
type pair struct {
	candidate string // normalized
	trigger   string // original current-list spelling
	count     int
}

// Suggest returns co-purchased items sorted by confidence descending.
// When a candidate co-occurs with several list items, the strongest pair
// wins the dedup.
func (a *Association) Suggest(input Input) model.Suggestions {
	if len(input.CurrentList) == 0 || len(input.History) == 0 {
		return nil
	}

	trips := make(map[string]map[string]bool)
	for _, record := range input.History {
		key := record.TripKey()
		if trips[key] == nil {
			trips[key] = make(map[string]bool)
		}
		trips[key][model.NormalizeItemName(record.ItemName)] = true
	}

	triggers := make(map[string]string, len(input.CurrentList))
	for _, name := range input.CurrentList {
		triggers[model.NormalizeItemName(name)] = name
	}

	counts := make(map[[2]string]int)
	for _, trip := range trips {
		for listItem := range triggers {
			if !trip[listItem] {
				continue
			}
			for other := range trip {
				if other == listItem || input.Excluded[other] {
					continue
				}
				counts[[2]string{listItem, other}]++
			}
		}
	}

	pairs := make([]pair, 0, len(counts))
	for key, count := range counts {
		if count < minCoOccurrences {
			continue
		}
		pairs = append(pairs, pair{
			candidate: key[1],
			trigger:   triggers[key[0]],
			count:     count,
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].candidate < pairs[j].candidate
	})

	profiles := buildProfiles(input.History)
	seen := make(map[string]bool, len(pairs))

	var suggestions model.Suggestions
	for _, p := range pairs {
		if seen[p.candidate] {
			continue
		}
		seen[p.candidate] = true

		suggestion := model.ItemSuggestion{
			ItemName:     p.candidate,
			Confidence:   clamp(0.5+0.05*float64(p.count), associationFloor, associationCeil),
			Reason:       model.ReasonUsuallyBuyTogether,
			RelatedItems: []string{p.trigger},
		}
		if profile, ok := profiles[p.candidate]; ok {
			suggestion.Category = profile.category
			suggestion.EstimatedPrice = profile.estimatedPrice()
		}

		suggestions = append(suggestions, suggestion)
	}

	suggestions.SortByConfidence()

	return suggestions
}
