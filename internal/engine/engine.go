// Package engine aggregates the suggestion signals into a single ranked,
// deduplicated list for the caller.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/service"
	"github.com/jpaulson/cartful/internal/signal"
)

// Per-signal result caps and accumulation gates. The order here is the
// authoritative tie-break: when two signals produce the same item, the
// earlier signal's reason and confidence win the dedup.
const (
	dayOfWeekCap    = 3
	frequencyCap    = 3
	frequencyGate   = 7 // frequency only runs when fewer results accumulated
	associationCap  = 2
	associationGate = 9
	recipeCap       = 2
)

// Engine orchestrates the signal extractors over the history store.
type Engine struct {
	store       service.HistoryStore
	dayOfWeek   signal.Extractor
	frequency   signal.Extractor
	association signal.Extractor
	recipe      signal.Extractor
	now         func() time.Time
}

// New creates a suggestion engine with the standard signal set.
func New(store service.HistoryStore) *Engine {
	return &Engine{
		store:       store,
		dayOfWeek:   signal.NewDayOfWeek(),
		frequency:   signal.NewFrequency(),
		association: signal.NewAssociation(),
		recipe:      signal.NewRecipe(),
		now:         time.Now,
	}
}

// Generate produces the ranked suggestion list for the current list
// contents. targetDate may be zero to mean "now"; maxSuggestions below
// zero clamps to zero. A failing or corrupt history store degrades to an
// empty history rather than an error.
func (e *Engine) Generate(ctx context.Context, currentList []string, maxSuggestions int, targetDate time.Time) model.Suggestions {
	if maxSuggestions < 0 {
		maxSuggestions = 0
	}
	if targetDate.IsZero() {
		targetDate = e.now()
	}

	history, err := e.store.ReadAll(ctx)
	if err != nil {
		slog.Warn("History unavailable, generating suggestions without it", "error", err)
		history = nil
	}

	input := signal.NewInput(history, currentList, targetDate)

	// Fixed priority order; later signals only fill remaining room.
	accumulated := make(model.Suggestions, 0, dayOfWeekCap+frequencyCap+associationCap+recipeCap)
	accumulated = append(accumulated, e.dayOfWeek.Suggest(input).Truncate(dayOfWeekCap)...)
	if len(accumulated) < frequencyGate {
		accumulated = append(accumulated, e.frequency.Suggest(input).Truncate(frequencyCap)...)
	}
	if len(accumulated) < associationGate {
		accumulated = append(accumulated, e.association.Suggest(input).Truncate(associationCap)...)
	}
	accumulated = append(accumulated, e.recipe.Suggest(input).Truncate(recipeCap)...)

	suggestions := accumulated.Dedupe()
	suggestions.SortByConfidence()

	if len(suggestions) == 0 {
		suggestions = defaultSuggestions(input.Excluded)
	}

	return suggestions.Truncate(maxSuggestions)
}
