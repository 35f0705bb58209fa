// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/jpaulson/cartful/internal/model"
)

// HistoryStore defines the contract for the purchase history persistence
// layer. The store is the single owner of PurchaseRecords; readers receive
// snapshots and must not assume they can mutate shared state.
type HistoryStore interface {
	// Append records a completed purchase and prunes the history to the
	// retention cap in the same transaction, oldest records first.
	Append(ctx context.Context, record model.PurchaseRecord) error
	// AppendBatch records multiple purchases atomically.
	AppendBatch(ctx context.Context, records []model.PurchaseRecord) error
	// ReadAll returns the full history ordered oldest to newest.
	ReadAll(ctx context.Context) ([]model.PurchaseRecord, error)
	// ItemStats returns per-item rollups derived from the history.
	ItemStats(ctx context.Context) ([]ItemStats, error)
	// Count returns the number of retained records.
	Count(ctx context.Context) (int, error)
}

// ItemStats summarizes one item's purchase history.
type ItemStats struct {
	ItemName          string
	Category          string
	PurchaseCount     int
	LastPurchased     time.Time
	TypicalPrice      *float64 // moving average of recorded prices
	AvgDaysBetweenBuy *float64 // nil until at least two purchases exist
}

// RemoteSuggester is the bridge to the external AI-backed suggestion
// service. Implementations must treat timeouts and non-success statuses
// as an empty result, never as an error surfaced to callers.
type RemoteSuggester interface {
	// Fetch returns normalized suggestions from the remote service.
	Fetch(ctx context.Context, limit int) (model.Suggestions, error)
	// NotifyPurchase pushes a completed purchase to the remote service so
	// future remote suggestions can account for it. Best effort.
	NotifyPurchase(ctx context.Context, record model.PurchaseRecord) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
