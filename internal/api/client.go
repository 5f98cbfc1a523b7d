// Package api is the HTTP gateway to the task-tracking backend.
//
// A single Client carries the cross-cutting transport policy: the bearer token
// is attached to every outgoing request, and any 401 response triggers the
// registered unauthorized hook before the error reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
type TokenSource func() string

// Client is the configured HTTP client for the backend REST surface.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client, *transport)

// WithHTTPClient replaces the underlying HTTP client. Its transport is still
// wrapped with the bearer/401 policy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client, _ *transport) { c.httpc = hc }
}

// WithTokenSource sets where the Authorization header value comes from.
func WithTokenSource(src TokenSource) Option {
	return func(_ *Client, t *transport) { t.token = src }
}

// WithUnauthorizedHook registers the global 401 policy. The hook runs once per
// 401 response, for every endpoint, before the error propagates.
func WithUnauthorizedHook(hook func()) Option {
	return func(_ *Client, t *transport) { t.onUnauthorized = hook }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client, _ *transport) { c.log = log }
}

// New builds a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     slog.Default(),
	}
	t := &transport{}
	for _, opt := range opts {
		opt(c, t)
	}
	t.next = c.httpc.Transport
	if t.next == nil {
		t.next = http.DefaultTransport
	}
	// Copy so a shared http.Client is not mutated for other users.
	hc := *c.httpc
	hc.Transport = t
	c.httpc = &hc
	return c
}

// transport attaches the bearer token to every request and fires the
// unauthorized hook on 401 responses. No request is exempted; attaching the
// header to login/register is harmless when no token exists yet.
type transport struct {
	next           http.RoundTripper
	token          TokenSource
	onUnauthorized func()
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	if t.token != nil {
		if tok := t.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.onUnauthorized()
	}
	return resp, nil
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues one request and decodes the enveloped response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, true)
}

// doRaw decodes the whole response body into out instead of unwrapping the
// data field. The pagination endpoint keeps its page counters as a sibling of
// data, so the envelope itself is the payload.
func (c *Client) doRaw(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, false)
}

func (c *Client) request(ctx context.Context, method, path string, body, out any, unwrap bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the fallback message covers them.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		c.log.Error("request rejected",
			"method", method, "path", path,
			"status", resp.StatusCode, "message", env.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	data := raw
	if unwrap && len(env.Data) > 0 {
		data = env.Data
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
