// Package promquery is a typed client for the Prometheus HTTP API. It
// executes instant and range expression queries as well as metadata
// queries (series, labels, rules, alerts, targets, server status) and
// decodes the responses into the strongly-typed structures of the
// model package. Queries themselves are opaque strings; the package
// never inspects PromQL.
package promquery

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const apiPrefix = "/api/v1"

// Doer performs a single HTTP request. *http.Client satisfies it; so
// does any instrumented or test transport.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes queries against one server. It is safe for
// concurrent use; it holds no per-request state.
type Client struct {
	base      *url.URL
	doer      Doer
	userAgent string
	logger    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDoer sets the transport collaborator used to perform requests.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithHTTPClient sets the *http.Client used to perform requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.doer = h }
}

// WithLogger sets a logger for request-level debug logging. Logging is
// disabled by default.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a Client for the server at address, e.g.
// "http://localhost:9090". Only the http and https schemes are
// supported. Connection problems surface when a query is executed, not
// here.
func NewClient(address string, opts ...Option) (*Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, errors.Wrap(err, "invalid server address")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("unsupported scheme %q in server address", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		base:   u,
		doer:   http.DefaultClient,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + apiPrefix + path
}

// get performs a GET request against an API path and decodes the
// enveloped response into dst.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst interface{}) (Warnings, error) {
	u := c.endpoint(path)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	return c.roundTrip(req, dst)
}

// postForm performs a form-encoded POST against an API path. The query
// endpoints accept it as an alternative to GET for long expressions.
func (c *Client) postForm(ctx context.Context, path string, params url.Values, dst interface{}) (Warnings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(params.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.roundTrip(req, dst)
}

func (c *Client) roundTrip(req *http.Request, dst interface{}) (Warnings, error) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		// Transport failures pass through; the cause stays reachable
		// with errors.Is/As.
		return nil, errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request executed")

	return ParseResponse(resp.Header.Get("Content-Type"), body, dst)
}

// formatTime renders a time as fractional Unix seconds the way the
// API's time parameters expect it.
func formatTime(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', -1, 64)
}
