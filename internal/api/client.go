// Package api is the HTTP/JSON client for the remote expense service.
//
// Endpoints:
//
//	GET    /expenses?name=<query>
//	GET    /expenses/:id
//	POST   /expenses
//	DELETE /expenses/:id
//	GET    /users?username=<value>
//	POST   /users
package api

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

	"golang.org/x/crypto/bcrypt"

	applog "spese-client/internal/log"
)

const maxErrorBody = 4 << 10

// Client talks to the remote service. It holds no per-user state and is safe
// for concurrent use.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	logger     *applog.Logger
	userAgent  string
	timeout    time.Duration
	bcryptCost int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is still
// wrapped with request-id stamping and logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request logs.
func WithLogger(l *applog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBcryptCost sets the cost used when hashing passwords at registration.
func WithBcryptCost(cost int) Option {
	return func(c *Client) { c.bcryptCost = cost }
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("parse base url: host is required")
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		baseURL:    u,
		http:       &http.Client{},
		logger:     applog.FromContext(context.Background()),
		userAgent:  "spese-client/1.0",
		timeout:    30 * time.Second,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent(applog.ComponentAPI)

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := *c.http
	hc.Timeout = c.timeout
	hc.Transport = &transport{base: base, userAgent: c.userAgent, logger: c.logger}
	c.http = &hc

	return c, nil
}

// Expenses returns the expense endpoints.
func (c *Client) Expenses() *Expenses {
	return &Expenses{c: c}
}

// Auth returns the user endpoints.
func (c *Client) Auth() *Auth {
	return &Auth{c: c}
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := *c.baseURL
	escaped := c.baseURL.EscapedPath()
	for _, s := range segments {
		u.Path += "/" + s
		escaped += "/" + url.PathEscape(s)
	}
	u.RawPath = escaped
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and decodes a JSON response into out when out is not
// nil. Non-2xx responses become *StatusError.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrInvalidResponse, method, req.URL.Path, err)
	}
	return nil
}
