// Package remote bridges to the external AI-backed suggestion service.
// Its results are normalized into the local suggestion shape but are
// never merged with the local signals; callers surface them separately so
// a slow or unavailable remote cannot block local suggestions.
package remote

import (
	"fmt"
	"strings"
	"time"

	"github.com/jpaulson/cartful/internal/common"
	"github.com/jpaulson/cartful/internal/model"
)

// Config holds settings for the remote suggestion bridge.
type Config struct {
	// BaseURL of the suggestion service, e.g. "https://api.example.com".
	BaseURL string
	// Timeout bounds each request. Generation latency runs tens of
	// seconds, so the default is generous.
	Timeout time.Duration
}

// DefaultTimeout bounds remote suggestion requests.
const DefaultTimeout = 45 * time.Second

func (c *Config) normalize() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: remote suggestion base URL", common.ErrMissingConfig)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// mapReason converts the remote service's free-text reason into one of
// the closed reason variants. The full text is preserved separately on
// the suggestion so nothing is discarded.
func mapReason(freeText string) model.SuggestionReason {
	lowered := strings.ToLower(freeText)
	switch {
	case strings.Contains(lowered, "season"):
		return model.ReasonSeasonalTrend
	case strings.Contains(lowered, "low"):
		return model.ReasonRunningLow
	default:
		return model.ReasonFrequentlyPurchased
	}
}
