// Package rest implements the driven adapter for the marketplace backend: a
// small JSON-over-HTTPS client that attaches the bearer credential, tags
// requests and normalises payloads and failures at the boundary.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx backend response. Message is the backend's optional
// message/error field; a missing field still yields a readable error.
type APIError struct {
	Status  int
	Message string
}

// Error returns the backend message when present, otherwise a generic status
// line.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: %d", e.Status)
}

// Client calls the marketplace backend. A single Client implements all of the
// domain's backend ports.
type Client struct {
	base   string
	http   *http.Client
	tokens oauth2.TokenSource
	log    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets the source of the bearer credential for authenticated
// endpoints. Typically this is app.TokenSource over the durable token store.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger enables request-level debug logging.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api base URL: %w", err)
	}

	c := &Client{
		base: baseURL,
		http: &http.Client{Timeout: defaultTimeout},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// bearer resolves the ambient credential from the configured token source.
func (c *Client) bearer() (*oauth2.Token, error) {
	if c.tokens == nil {
		return nil, errors.New("no token source configured")
	}
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// do performs one JSON round trip. A nil token leaves the request
// unauthenticated; body and out may each be nil. Non-2xx responses are
// returned as *APIError, transport failures as wrapped errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, tok *oauth2.Token, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok != nil {
		tok.SetAuthHeader(req)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Bool("authenticated", tok != nil),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError decodes the backend's error envelope. Both "message" and "error"
// fields are accepted; neither is required.
func (c *Client) apiError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&envelope)

	msg := envelope.Message
	if msg == "" {
		msg = envelope.Error
	}

	c.log.Debug("api error",
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg),
	)
	return &APIError{Status: resp.StatusCode, Message: msg}
}
