package remote

import (
	"context"

	"github.com/laneweave/laneweave/pkg/cache"
	"github.com/laneweave/laneweave/pkg/errors"
)

// Views the render/share service understands. An empty view lets the
// service pick its default.
const (
	ViewWorkflow     = "workflow"
	ViewSequence     = "sequence"
	ViewArchitecture = "architecture"
)

// ValidView reports whether view names a supported rendering, or is empty.
func ValidView(view string) bool {
	switch view {
	case "", ViewWorkflow, ViewSequence, ViewArchitecture:
		return true
	}
	return false
}

// ShareResult is the render/share service's response.
type ShareResult struct {
	URL string `json:"url"`
}

// shareResponse is the raw wire shape; the service reports its own failures
// in-band through the error field rather than with HTTP status codes.
type shareResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ShareClient talks to the external render/share service.
type ShareClient struct {
	client  *Client
	keys    cache.Keyer
	baseURL string
}

// NewShareClient creates a client for the share service at baseURL.
func NewShareClient(client *Client, baseURL string) *ShareClient {
	return &ShareClient{
		client:  client,
		keys:    cache.NewDefaultKeyer(),
		baseURL: baseURL,
	}
}

type shareRequest struct {
	Code string `json:"code"`
	View string `json:"view,omitempty"`
}

// Share posts the diagram text and returns the shareable URL. Results are
// cached per (text, view) pair; pass refresh to bypass the cache.
func (c *ShareClient) Share(ctx context.Context, code, view string, refresh bool) (*ShareResult, error) {
	if !ValidView(view) {
		return nil, errors.New(errors.ErrCodeInvalidView, "unknown view %q", view)
	}

	var raw shareResponse
	key := c.keys.ShareKey(code, view)
	err := c.client.Cached(ctx, key, refresh, &raw, func() error {
		if err := c.client.PostJSON(ctx, c.baseURL, shareRequest{Code: code, View: view}, &raw); err != nil {
			return err
		}
		if raw.Error != "" {
			return errors.New(errors.ErrCodeUnavailable, "share service: %s", raw.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ShareResult{URL: raw.URL}, nil
}
