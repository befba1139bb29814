// Package chat is a client for the answer backend's HTTP API.
//
// The backend exposes a small surface: a health probe, a model
// inventory, a streaming inference endpoint and a stop control for
// running tasks. Inference output arrives as server-sent events
// carrying incremental answer text; see [Client.Infer].
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is where a locally started backend listens.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client talks to one answer backend.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The default client has no
// timeout because inference streams are long-lived; bound individual
// calls with a context instead.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient creates a client for the backend at baseURL. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.httpc == nil {
		c.httpc = &http.Client{}
	}
	return c
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Health probes the backend and returns nil when it is up.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("backend reported status %q", out.Status)
	}
	return nil
}

// ModelInfo describes one model configured on the backend.
type ModelInfo struct {
	Model       string `json:"model"`
	DisplayName string `json:"display_name"`
	BaseURL     string `json:"base_url"`
	ModelName   string `json:"model_name"`
}

// Models lists the models the backend can serve.
func (c *Client) Models(ctx context.Context) ([]ModelInfo, error) {
	var out struct {
		Models []ModelInfo `json:"models"`
	}
	if err := c.getJSON(ctx, "/models", &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}

// StopResult is the backend's answer to a stop request.
type StopResult struct {
	Status string `json:"status"`
	TaskID string `json:"task_id"`
}

// Stopped reports whether the backend accepted the stop request.
func (r *StopResult) Stopped() bool { return r.Status == "stopping" }

// Stop asks the backend to cancel the task named by taskID.
func (c *Client) Stop(ctx context.Context, taskID string) (*StopResult, error) {
	if taskID == "" {
		return nil, fmt.Errorf("stop: task id is empty")
	}
	form := url.Values{"task_id": {taskID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/stop", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var out StopResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// getJSON performs a GET against path and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError turns a non-200 response into an error carrying a short
// excerpt of the body, where the backend puts its detail message.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fmt.Errorf("backend returned %s", resp.Status)
	}
	return fmt.Errorf("backend returned %s: %s", resp.Status, detail)
}
