package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jpaulson/cartful/internal/common"
	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/service"
)

// Compile-time check that the bridge satisfies the service contract.
var _ service.RemoteSuggester = (*Bridge)(nil)

// Bridge is the HTTP client for the remote suggestion service. A circuit
// breaker stops it from hammering an endpoint that is already failing;
// an open circuit behaves exactly like any other remote failure.
type Bridge struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[model.Suggestions]
	baseURL    string
}

// NewBridge creates a remote suggestion bridge.
func NewBridge(cfg Config) (*Bridge, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	breaker := gobreaker.NewCircuitBreaker[model.Suggestions](gobreaker.Settings{
		Name:    "remote-suggestions",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// A caller-side cancel says nothing about the remote's health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Bridge{
		baseURL: cfg.BaseURL,
		breaker: breaker,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// remoteSuggestion is the wire shape of one item in the service response.
type remoteSuggestion struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	EstimatedPrice *float64 `json:"estimatedPrice"`
	Confidence     float64  `json:"confidence"`
	Reason         string   `json:"reason"`
}

// Fetch returns normalized suggestions from the remote service. Timeouts,
// non-success statuses, and an open circuit all produce an empty result
// with a logged diagnostic; the returned error is reserved for caller
// cancellation so UI-adjacent code never sees a remote failure.
func (b *Bridge) Fetch(ctx context.Context, limit int) (model.Suggestions, error) {
	if limit <= 0 {
		return model.Suggestions{}, nil
	}

	suggestions, err := b.breaker.Execute(func() (model.Suggestions, error) {
		return b.fetch(ctx, limit)
	})
	if err != nil {
		if ctx.Err() != nil {
			return model.Suggestions{}, ctx.Err()
		}
		common.LogWarn("Remote suggestions unavailable", common.Fields{
			"error": err.Error(),
			"limit": limit,
		})
		return model.Suggestions{}, nil
	}

	return suggestions, nil
}

func (b *Bridge) fetch(ctx context.Context, limit int) (model.Suggestions, error) {
	url := b.baseURL + "/suggestions?limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, common.ErrRemoteRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrRemoteUnavailable, resp.StatusCode)
	}

	var payload struct {
		Suggestions []remoteSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return normalize(payload.Suggestions), nil
}

// normalize converts wire suggestions into the local shape. Confidence is
// clamped into [0,1] and the free-text reason is preserved alongside the
// mapped variant.
func normalize(items []remoteSuggestion) model.Suggestions {
	suggestions := make(model.Suggestions, 0, len(items))
	for _, item := range items {
		name := model.NormalizeItemName(item.Name)
		if name == "" {
			continue
		}

		confidence := item.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}

		suggestions = append(suggestions, model.ItemSuggestion{
			ItemName:        name,
			Category:        item.Category,
			EstimatedPrice:  item.EstimatedPrice,
			Confidence:      confidence,
			Reason:          mapReason(item.Reason),
			RemoteRationale: item.Reason,
		})
	}
	return suggestions
}

// NotifyPurchase pushes a completed purchase to the remote service so its
// future suggestions account for it. Unlike Fetch, errors are returned:
// the caller wraps this in a retry and ultimately logs, never surfaces.
func (b *Bridge) NotifyPurchase(ctx context.Context, record model.PurchaseRecord) error {
	payload := map[string]any{
		"name":     record.ItemName,
		"category": record.Category,
		"date":     record.Date.UTC().Format(time.RFC3339),
	}
	if record.Price != nil {
		payload["price"] = *record.Price
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal purchase: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/purchases", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: status %d", common.ErrRemoteUnavailable, resp.StatusCode),
			Retryable: true,
		}
	default:
		return &common.RetryableError{
			Err:       fmt.Errorf("purchase sync rejected: status %d", resp.StatusCode),
			Retryable: false,
		}
	}
}
