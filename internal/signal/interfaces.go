// Package signal implements the independent suggestion heuristics that
// feed the aggregation engine. Every signal is a pure function over a
// read-only history snapshot plus the current list contents.
package signal

import (
	"time"

	"github.com/jpaulson/cartful/internal/model"
)

// Input is the read-only snapshot a signal evaluates. Signals must not
// mutate any of its fields.
type Input struct {
	History     []model.PurchaseRecord // oldest to newest
	CurrentList []string               // raw item names as the user typed them
	Excluded    map[string]bool        // normalized names to never suggest
	TargetDate  time.Time              // the date the user is shopping for
}

// NewInput builds an Input, deriving the exclusion set from the current
// list (case-insensitive) and defaulting the target date to now.
func NewInput(history []model.PurchaseRecord, currentList []string, targetDate time.Time) Input {
	excluded := make(map[string]bool, len(currentList))
	for _, name := range currentList {
		excluded[model.NormalizeItemName(name)] = true
	}

	if targetDate.IsZero() {
		targetDate = time.Now()
	}

	return Input{
		History:     history,
		CurrentList: currentList,
		Excluded:    excluded,
		TargetDate:  targetDate,
	}
}

// Extractor produces candidate suggestions from an input snapshot.
type Extractor interface {
	// Name identifies the signal in logs.
	Name() string
	// Suggest returns candidates ordered by the signal's own ranking.
	Suggest(input Input) model.Suggestions
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
