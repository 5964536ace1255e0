package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"streamd/internal/api"
)

const requestTimeout = 30 * time.Second

// APIError is a non-200 answer from the daemon, carrying the status code
// and the error message from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// Client talks to one daemon's control API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the daemon at endpoint, e.g.
// "http://localhost:8080".
func New(endpoint string) *Client {
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Endpoint returns the base URL the client talks to.
func (c *Client) Endpoint() string {
	return c.baseURL
}

// Streams lists every stream with its current state.
func (c *Client) Streams(ctx context.Context) ([]api.StreamStatus, error) {
	var streams []api.StreamStatus
	if err := c.call(ctx, http.MethodGet, "/api/streams", &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// Status reports daemon and reconcile-loop health.
func (c *Client) Status(ctx context.Context) (*api.DaemonStatus, error) {
	var status api.DaemonStatus
	if err := c.call(ctx, http.MethodGet, "/api/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Start (re)starts one stream with the given repeat count (-1 repeats
// forever). The returned flag is false when the daemon accepted the request
// but could not launch the stream.
func (c *Client) Start(ctx context.Context, id string, repeatCount int) (bool, error) {
	path := fmt.Sprintf("/api/streams/%s/start?repeat=%d", url.PathEscape(id), repeatCount)
	var resp api.ActionResponse
	if err := c.call(ctx, http.MethodPost, path, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// Stop stops one stream. The returned flag is false when the stream was not
// running.
func (c *Client) Stop(ctx context.Context, id string) (bool, error) {
	path := fmt.Sprintf("/api/streams/%s/stop", url.PathEscape(id))
	var resp api.ActionResponse
	if err := c.call(ctx, http.MethodPost, path, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// StartAll starts every stopped stream with its remembered repeat count.
func (c *Client) StartAll(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/streams/start-all", nil)
}

// StopAll stops every running stream.
func (c *Client) StopAll(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/streams/stop-all", nil)
}

func (c *Client) call(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach daemon at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body api.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
