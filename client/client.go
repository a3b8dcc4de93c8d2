// Package client provides the HTTP client for the replay sidecar server.
// It handles request plumbing and response envelope decoding. Failed
// requests are never retried; callers degrade gracefully and keep the state
// they already have.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/replaykit/replay/config"
	rperrors "github.com/replaykit/replay/pkg/errors"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// Options configures the Client behavior.
type Options struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// DefaultOptions returns Options with default values.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout}
}

// Client talks to the sidecar server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: opts.Timeout},
	}
}

// FromConfig creates a Client using CLIConfig. This is the canonical way to
// create a client from CLI commands.
func FromConfig(cfg *config.CLIConfig) *Client {
	opts := DefaultOptions()
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	return New(cfg.ServerAddress, opts)
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the sidecar's response wrapper. Code 0 means success; failure
// codes are in the 50000 range with a human-readable message.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// get issues a GET request and returns the raw response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return c.do(req)
}

// postJSON issues a POST request with a JSON body and returns the raw
// response body.
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: server returned %s", rperrors.ErrUnavailable, resp.Status)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, string(body))
	}
	return body, nil
}

// unwrap decodes a response envelope and returns its data block. A non-zero
// code or missing data is reported as an error; callers keep whatever state
// they already have.
func unwrap(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", rperrors.ErrMalformedDocument, err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("server error %d: %s", env.Code, env.Message)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: response has no data", rperrors.ErrMalformedDocument)
	}
	return env.Data, nil
}
