package engine

import (
	"context"
	"fmt"

	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/signal"
)

// RelatedItems answers "what do I usually buy with this?" using the same
// trip bucketing as the association signal. maxResults below zero clamps
// to zero.
func (e *Engine) RelatedItems(ctx context.Context, itemName string, maxResults int) (model.Suggestions, error) {
	if model.NormalizeItemName(itemName) == "" {
		return nil, fmt.Errorf("item name is required")
	}

	history, err := e.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	input := signal.NewInput(history, []string{itemName}, e.now())
	related := e.association.Suggest(input)

	return related.Truncate(maxResults), nil
}
