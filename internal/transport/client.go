// Package transport provides the outbound HTTP client shared by the GitHub,
// Scholar and data-file fetchers.
package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
)

// DefaultUserAgent identifies outbound requests.
const DefaultUserAgent = "anxiangsir-homepage"

// Client provides HTTP client functionality with authentication.
type Client struct {
	http      *http.Client
	auth      Authenticator
	token     string
	userAgent string
	accept    string
	headers   http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates requests with token using the client's
// authenticator (bearer by default).
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
		if token != "" {
			if _, ok := c.auth.(*NoAuth); ok {
				c.auth = &BearerAuth{}
			}
		}
	}
}

// WithAuthenticator sets how the token is applied.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithAccept sets the Accept header.
func WithAccept(accept string) Option {
	return func(c *Client) {
		c.accept = accept
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New creates a new transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:      &NoAuth{},
		userAgent: DefaultUserAgent,
		accept:    "application/json",
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewGitHub creates a client for the GitHub REST API. An empty token gives
// anonymous access.
func NewGitHub(token string) *Client {
	return New(WithAccept("application/vnd.github+json"), WithToken(token))
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	if req.Header.Get("Accept") == "" && c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}

// RateLimitRemaining reports the X-RateLimit-Remaining header. ok is false
// when the header is absent or not a number.
func RateLimitRemaining(resp *http.Response) (remaining int, ok bool) {
	v := resp.Header.Get("X-RateLimit-Remaining")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
