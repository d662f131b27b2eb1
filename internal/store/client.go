// Package store provides the client for the upstream N1QL query
// service.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/j-veylop/grok-error-dashboard/internal/logger"
)

// Row is one result row as returned by the query service.
type Row = map[string]any

// Client executes N1QL statements against the query service over HTTP
// basic auth. Each call is a single attempt with a fixed timeout; the
// service layer decides how failures degrade.
type Client struct {
	mu       sync.RWMutex
	endpoint string
	user     string
	pass     string
	http     *http.Client
}

// NewClient creates a query client for the given endpoint.
func NewClient(endpoint, user, pass string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		user:     user,
		pass:     pass,
		http:     &http.Client{Timeout: timeout},
	}
}

// SetCredentials swaps the endpoint and credentials in place. Used by
// the config hot-reload path.
func (c *Client) SetCredentials(endpoint, user, pass string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
	c.user = user
	c.pass = pass
}

// queryResponse is the envelope returned by the query service.
type queryResponse struct {
	Results []Row           `json:"results"`
	Errors  []queryError    `json:"errors,omitempty"`
	Status  string          `json:"status,omitempty"`
	Metrics json.RawMessage `json:"metrics,omitempty"`
}

type queryError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Query executes one statement with bound named parameters and returns
// the result rows. Parameter names are sent with the "$" prefix the
// query service expects; values are never interpolated into the
// statement.
func (c *Client) Query(ctx context.Context, statement string, params map[string]any) ([]Row, error) {
	c.mu.RLock()
	endpoint, user, pass := c.endpoint, c.user, c.pass
	c.mu.RUnlock()

	payload := map[string]any{"statement": statement}
	for k, v := range params {
		payload["$"+k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(user, pass)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read query response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query failed (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var decoded queryResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		return nil, fmt.Errorf("query error %d: %s", first.Code, first.Msg)
	}

	return decoded.Results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
