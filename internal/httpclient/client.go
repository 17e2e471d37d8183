// Package httpclient is the one configured request client every API module
// sends through. It injects the bearer token, applies the request timeout and
// classifies failures. It never retries.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/metrics"
)

const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 4 << 10

// TokenStore supplies and clears the bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, bool)
	ClearToken(ctx context.Context) error
}

// Client sends JSON requests relative to a base URL.
type Client struct {
	base           *url.URL
	http           *http.Client
	tokens         TokenStore
	logger         *slog.Logger
	metrics        *metrics.Metrics
	onUnauthorized func()
}

type Option func(*Client)

// WithTimeout sets the per-request timeout. A timed-out request fails as
// KindNetwork.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient uses a copy of hc as the underlying client (its Timeout is
// kept unless WithTimeout is applied afterwards). hc itself is never
// modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUnauthorizedHandler installs the caller's policy for 401 responses
// (login redirect, token refresh). It runs after the token was cleared.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	// Paths resolve relative to the base, so it has to end in a slash.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		if base.RawPath != "" {
			base.RawPath += "/"
		}
	}

	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Get is Do with GET and no body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post is Do with POST and no query.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Do sends one request. A non-nil body is encoded as JSON; a non-nil out
// receives the decoded 2xx response. Every failure is an *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.do(ctx, method, path, query, body, out)
	c.observe(method, start, err)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		c.logger.Error("error setting up request", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return &Error{Kind: KindRequestSetup, Method: method, Path: path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("network error - no response received", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(req.Context(), resp, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty body: leave out at its zero value.
			return nil
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return &Error{Kind: KindNetwork, Status: resp.StatusCode, Method: method, Path: path, Err: err}
		}
		return &Error{Kind: KindUnexpected, Status: resp.StatusCode, Method: method, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	if method == "" {
		return nil, errors.New("method is required")
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	u := c.base.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) statusError(ctx context.Context, resp *http.Response, method, path string) error {
	kind := classifyStatus(resp.StatusCode)
	e := &Error{Kind: kind, Status: resp.StatusCode, Method: method, Path: path}

	if msg := readMessage(resp.Body); msg != "" {
		e.Err = errors.New(msg)
	}

	attrs := []any{slog.String("method", method), slog.String("path", path), slog.Int("status", resp.StatusCode)}
	switch kind {
	case KindUnauthorized:
		// Possibly an expired token. Clearing it is the only side effect here.
		if c.tokens != nil {
			if err := c.tokens.ClearToken(ctx); err != nil {
				c.logger.Debug("failed to clear auth token", slog.String("error", err.Error()))
			}
		}
		c.logger.Info("unauthorized response, auth token cleared", attrs...)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case KindNotFound:
		c.logger.Debug("resource not found", attrs...)
	case KindServer:
		c.logger.Warn("server error occurred", attrs...)
	default:
		c.logger.Warn("unexpected response status", attrs...)
	}
	return e
}

// readMessage extracts a human-readable message from an error body: the
// "message" or "error" JSON field, else the trimmed text.
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) observe(method string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	kind := "ok"
	if k := KindOf(err); k != "" {
		kind = string(k)
	}
	c.metrics.ClientRequests.WithLabelValues(kind).Inc()
	c.metrics.ClientDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
