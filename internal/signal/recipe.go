package signal

import (
	"sort"
	"strings"

	"github.com/jpaulson/cartful/internal/model"
)

// recipeConfidence is fixed: this signal encodes domain knowledge, not
// statistics, so its confidence does not vary.
const recipeConfidence = 0.7

// complement is one item commonly paired with a trigger item.
type complement struct {
	name     string
	category string
}

// recipeTable maps a trigger substring to the items that commonly
// complete it. Matching is case-insensitive substring against list items.
var recipeTable = map[string][]complement{
	"pasta": {
		{"tomato sauce", "Pantry"},
		{"parmesan cheese", "Dairy"},
		{"olive oil", "Pantry"},
		{"garlic", "Produce"},
	},
	"taco": {
		{"tortillas", "Bakery"},
		{"salsa", "Pantry"},
		{"shredded cheese", "Dairy"},
		{"sour cream", "Dairy"},
	},
	"pancake": {
		{"maple syrup", "Pantry"},
		{"butter", "Dairy"},
		{"eggs", "Dairy"},
	},
	"salad": {
		{"salad dressing", "Pantry"},
		{"croutons", "Bakery"},
		{"cucumber", "Produce"},
	},
	"burger": {
		{"burger buns", "Bakery"},
		{"ketchup", "Pantry"},
		{"lettuce", "Produce"},
		{"cheese slices", "Dairy"},
	},
	"curry": {
		{"rice", "Pantry"},
		{"coconut milk", "Pantry"},
		{"onions", "Produce"},
	},
	"cereal": {
		{"milk", "Dairy"},
	},
	"coffee": {
		{"coffee filters", "Household"},
		{"creamer", "Dairy"},
	},
	"pizza dough": {
		{"mozzarella", "Dairy"},
		{"tomato sauce", "Pantry"},
		{"basil", "Produce"},
	},
}

// Compile-time check.
var _ Extractor = (*Recipe)(nil)

// Recipe suggests complements for items already on the list. It is the
// only signal independent of purchase history, so users with no history
// still get suggestions.
type Recipe struct {
	table    map[string][]complement
	triggers []string // sorted for deterministic matching order
}

// NewRecipe creates the recipe-completion signal with the built-in table.
func NewRecipe() *Recipe {
	triggers := make([]string, 0, len(recipeTable))
	for trigger := range recipeTable {
		triggers = append(triggers, trigger)
	}
	sort.Strings(triggers)

	return &Recipe{table: recipeTable, triggers: triggers}
}

// Name identifies the signal in logs.
func (r *Recipe) Name() string { return "recipe" }

// Suggest returns recipe complements for every list item that matches a
// trigger, in table order per trigger, excluded names skipped.
func (r *Recipe) Suggest(input Input) model.Suggestions {
	profiles := buildProfiles(input.History)

	var suggestions model.Suggestions
	seen := make(map[string]bool)

	for _, listItem := range input.CurrentList {
		normalized := model.NormalizeItemName(listItem)
		for _, trigger := range r.triggers {
			if !strings.Contains(normalized, trigger) {
				continue
			}

			for _, c := range r.table[trigger] {
				name := model.NormalizeItemName(c.name)
				if input.Excluded[name] || seen[name] {
					continue
				}
				seen[name] = true

				suggestion := model.ItemSuggestion{
					ItemName:     name,
					Category:     c.category,
					Confidence:   recipeConfidence,
					Reason:       model.ReasonRecipeCompletion,
					RelatedItems: []string{listItem},
				}
				if profile, ok := profiles[name]; ok {
					suggestion.EstimatedPrice = profile.estimatedPrice()
					if profile.category != "" {
						suggestion.Category = profile.category
					}
				}

				suggestions = append(suggestions, suggestion)
			}
		}
	}

	return suggestions
}
