package remote

import (
	"context"

	"github.com/laneweave/laneweave/pkg/cache"
)

// Issue is one validation finding tied to a source line.
type Issue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ValidationStats echoes the service's own element counts. The local parser
// recomputes stats independently and never relies on these matching.
type ValidationStats struct {
	Lanes int `json:"lanes"`
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// ValidationResult is the validation service's verdict on a diagram.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Errors   []Issue         `json:"errors"`
	Warnings []string        `json:"warnings"`
	Stats    ValidationStats `json:"stats"`
}

// ValidateClient talks to the external validation service.
type ValidateClient struct {
	client  *Client
	keys    cache.Keyer
	baseURL string
}

// NewValidateClient creates a client for the validation service at baseURL.
func NewValidateClient(client *Client, baseURL string) *ValidateClient {
	return &ValidateClient{
		client:  client,
		keys:    cache.NewDefaultKeyer(),
		baseURL: baseURL,
	}
}

type validateRequest struct {
	Code string `json:"code"`
}

// Validate posts the diagram text and returns the service's verdict.
// Results are cached by text hash; pass refresh to bypass the cache.
func (c *ValidateClient) Validate(ctx context.Context, code string, refresh bool) (*ValidationResult, error) {
	var result ValidationResult
	key := c.keys.ValidationKey(code)
	err := c.client.Cached(ctx, key, refresh, &result, func() error {
		return c.client.PostJSON(ctx, c.baseURL, validateRequest{Code: code}, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
