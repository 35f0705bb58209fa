package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpaulson/cartful/internal/model"
)

// Restock tuning. An item qualifies once 80% of its usual repurchase
// interval has elapsed; confidence grows linearly until the interval is
// fully elapsed.
const (
	restockThreshold     = 0.8
	defaultMinConfidence = 0.5
)

// PredictRestock suggests items whose usual repurchase interval has
// nearly elapsed. Items on the current list are excluded. minConfidence
// at or below zero uses the default floor.
func (e *Engine) PredictRestock(ctx context.Context, currentList []string, minConfidence float64) (model.Suggestions, error) {
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}

	stats, err := e.store.ItemStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load item stats: %w", err)
	}

	excluded := make(map[string]bool, len(currentList))
	for _, name := range currentList {
		excluded[model.NormalizeItemName(name)] = true
	}

	now := e.now()

	var suggestions model.Suggestions
	for _, item := range stats {
		if excluded[item.ItemName] || item.AvgDaysBetweenBuy == nil || item.LastPurchased.IsZero() {
			continue
		}

		expected := *item.AvgDaysBetweenBuy
		if expected <= 0 {
			continue
		}

		daysSince := now.Sub(item.LastPurchased).Hours() / 24
		if daysSince < expected*restockThreshold {
			continue
		}

		confidence := daysSince / expected
		if confidence > 1.0 {
			confidence = 1.0
		}
		if confidence < minConfidence {
			continue
		}

		suggestions = append(suggestions, model.ItemSuggestion{
			ItemName:       item.ItemName,
			Category:       item.Category,
			EstimatedPrice: item.TypicalPrice,
			Confidence:     confidence,
			Reason:         model.ReasonRunningLow,
		})
	}

	suggestions.SortByConfidence()

	slog.Debug("Restock prediction complete",
		"candidates", len(stats),
		"predicted", len(suggestions))

	return suggestions, nil
}
