package signal

import (
	"sort"

	"github.com/jpaulson/cartful/internal/model"
)

// Day-of-week tuning. The minimum count keeps single coincidences from
// looking like a weekly routine; the staleness boost favors items whose
// usual cycle has already elapsed.
const (
	minWeekdayPurchases = 2
	dayOfWeekBase       = 0.5
	dayOfWeekCeiling    = 0.95
	stalenessBoost      = 0.1
	stalenessDays       = 7
)

// Compile-time check.
var _ Extractor = (*DayOfWeek)(nil)

// DayOfWeek suggests items the user habitually buys on the target date's
// weekday ("always buy milk on Saturdays").
type DayOfWeek struct{}

// NewDayOfWeek creates the day-of-week signal.
func NewDayOfWeek() *DayOfWeek {
	return &DayOfWeek{}
}

// Name identifies the signal in logs.
func (d *DayOfWeek) Name() string { return "day_of_week" }

// Suggest returns weekday-routine items sorted by confidence descending.
func (d *DayOfWeek) Suggest(input Input) model.Suggestions {
	weekday := input.TargetDate.Weekday()
	profiles := buildProfiles(input.History)

	dayCounts := make(map[string]int)
	for _, record := range input.History {
		if record.Date.Weekday() == weekday {
			dayCounts[model.NormalizeItemName(record.ItemName)]++
		}
	}

	var suggestions model.Suggestions
	for name, profile := range profiles {
		if input.Excluded[name] {
			continue
		}

		dayCount := dayCounts[name]
		if dayCount < minWeekdayPurchases {
			continue
		}

		confidence := clamp(
			dayOfWeekBase+0.4*float64(dayCount)/float64(profile.count),
			dayOfWeekBase, dayOfWeekCeiling)

		daysSince := input.TargetDate.Sub(profile.lastPurchased).Hours() / 24
		if daysSince >= stalenessDays {
			confidence = clamp(confidence+stalenessBoost, 0, 1.0)
		}

		suggestions = append(suggestions, model.ItemSuggestion{
			ItemName:       name,
			Category:       profile.category,
			EstimatedPrice: profile.estimatedPrice(),
			Confidence:     confidence,
			Reason:         model.ReasonDaySpecific,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].ItemName < suggestions[j].ItemName
	})

	return suggestions
}
