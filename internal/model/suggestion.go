package model

import (
	"fmt"
	"sort"
	"strings"
)

// SuggestionReason identifies which heuristic produced a suggestion.
type SuggestionReason string

// Known suggestion reasons.
const (
	ReasonFrequentlyPurchased SuggestionReason = "frequently_purchased"
	ReasonUsuallyBuyTogether  SuggestionReason = "usually_buy_together"
	ReasonRecipeCompletion    SuggestionReason = "recipe_completion"
	ReasonDaySpecific         SuggestionReason = "day_specific"
	ReasonRunningLow          SuggestionReason = "running_low"
	ReasonSeasonalTrend       SuggestionReason = "seasonal_trend"
	ReasonSimilarToRecent     SuggestionReason = "similar_to_recent"
)

// IsValid reports whether the reason is one of the known causes.
func (r SuggestionReason) IsValid() bool {
	switch r {
	case ReasonFrequentlyPurchased, ReasonUsuallyBuyTogether, ReasonRecipeCompletion,
		ReasonDaySpecific, ReasonRunningLow, ReasonSeasonalTrend, ReasonSimilarToRecent:
		return true
	}
	return false
}

// Description returns a human-readable explanation for the reason.
func (r SuggestionReason) Description() string {
	switch r {
	case ReasonFrequentlyPurchased:
		return "You buy this often"
	case ReasonUsuallyBuyTogether:
		return "Usually bought together"
	case ReasonRecipeCompletion:
		return "Completes a recipe"
	case ReasonDaySpecific:
		return "You usually buy this on this day"
	case ReasonRunningLow:
		return "Probably running low"
	case ReasonSeasonalTrend:
		return "In season right now"
	case ReasonSimilarToRecent:
		return "Similar to recent purchases"
	default:
		return string(r)
	}
}

// ItemSuggestion is a single "you might want to add this" candidate.
// Value type; built fresh per suggestion run and never persisted.
type ItemSuggestion struct {
	ItemName        string
	Category        string
	EstimatedPrice  *float64
	Confidence      float64 // always clamped into [0,1]
	Reason          SuggestionReason
	RemoteRationale string // free-text reason from the remote service, if any
	RelatedItems    []string
}

// Validate ensures the ItemSuggestion has valid data.
func (s *ItemSuggestion) Validate() error {
	if strings.TrimSpace(s.ItemName) == "" {
		return fmt.Errorf("item name is required")
	}

	if s.Confidence < 0.0 || s.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", s.Confidence)
	}

	if !s.Reason.IsValid() {
		return fmt.Errorf("unknown suggestion reason %q", s.Reason)
	}

	return nil
}

// Suggestions is a slice of ItemSuggestion with ordering and dedup helpers.
type Suggestions []ItemSuggestion

// SortByConfidence sorts descending by confidence. The sort is stable so
// equal-confidence items keep their prior relative order, which preserves
// the signal priority ordering as the tie-break.
func (s Suggestions) SortByConfidence() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Confidence > s[j].Confidence
	})
}

// Dedupe removes suggestions whose normalized item name was already seen.
// First occurrence wins, so callers control priority via input order.
func (s Suggestions) Dedupe() Suggestions {
	seen := make(map[string]bool, len(s))
	result := make(Suggestions, 0, len(s))

	for _, suggestion := range s {
		key := NormalizeItemName(suggestion.ItemName)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, suggestion)
	}

	return result
}

// Truncate limits the slice to at most n suggestions. Negative n clamps
// to zero rather than erroring.
func (s Suggestions) Truncate(n int) Suggestions {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// Names returns the item names in order, mostly for tests and display.
func (s Suggestions) Names() []string {
	names := make([]string, len(s))
	for i, suggestion := range s {
		names[i] = suggestion.ItemName
	}
	return names
}
