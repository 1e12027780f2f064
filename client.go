package rielpay

import (
	"context"
	"time"

	"github.com/rielpay/client-go/internal/transport"
)

// Client is the main RielPay client. It owns one session (access
// token + URN) and the transport core shared by every resource call.
// A Client is safe for concurrent use.
type Client struct {
	transport *transport.Client
}

// New creates a new RielPay client. Configuration is validated here,
// once; a contradictory or incomplete configuration fails immediately
// with a ConfigError, never at first request. New performs no network
// I/O.
func New(opts ...Option) (*Client, error) {
	cfg := transport.Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	core, err := transport.New(cfg)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Client{transport: core}, nil
}

// Execute runs a described HTTP request against the API, decoding a
// successful JSON response into result (which may be nil). Transient
// failures are retried per the configured policy; terminal failures
// surface as one of the typed errors in this package.
func (c *Client) Execute(ctx context.Context, req *Request, result any) error {
	return wrapError(c.transport.Do(ctx, req, result))
}

// Do is a convenience wrapper around Execute for the common case. The
// path must already contain any query string; the client never builds
// queries.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	return c.Execute(ctx, &Request{Method: method, Path: path, Body: body}, result)
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// SetAccessToken installs the bearer token for the session. Once set,
// it replaces the raw API key in the Authorization header. Invoked by
// the identity connect flow; exposed for callers that manage tokens
// themselves.
func (c *Client) SetAccessToken(token string) {
	c.transport.Session().SetAccessToken(token)
}

// AccessToken returns the session bearer token, or "".
func (c *Client) AccessToken() string {
	return c.transport.Session().AccessToken()
}

// SetURN records the resolved identity URN for the session.
func (c *Client) SetURN(urn string) {
	c.transport.Session().SetURN(urn)
}

// URN returns the resolved identity URN, or "".
func (c *Client) URN() string {
	return c.transport.Session().URN()
}

// SetOrigin updates the tenant origin for the session.
func (c *Client) SetOrigin(origin string) {
	c.transport.Session().SetOrigin(origin)
}

// Origin returns the tenant origin.
func (c *Client) Origin() string {
	return c.transport.Session().Origin()
}

// SetJWTToken persists the token through the configured token storage
// and installs it as the in-memory session token.
func (c *Client) SetJWTToken(ctx context.Context, token string) error {
	if storage := c.transport.TokenStorage(); storage != nil {
		if err := storage.Set(ctx, token); err != nil {
			return err
		}
	}
	c.transport.Session().SetAccessToken(token)
	return nil
}

// GetJWTToken reads the token from the configured token storage.
// Returns "" when no storage is configured or nothing is stored.
func (c *Client) GetJWTToken(ctx context.Context) (string, error) {
	storage := c.transport.TokenStorage()
	if storage == nil {
		return "", nil
	}
	return storage.Get(ctx)
}

// ClearJWTToken removes the token from storage and from the session.
func (c *Client) ClearJWTToken(ctx context.Context) error {
	if storage := c.transport.TokenStorage(); storage != nil {
		if err := storage.Clear(ctx); err != nil {
			return err
		}
	}
	c.transport.Session().SetAccessToken("")
	return nil
}

// timeoutPtr is a small helper for per-request timeout overrides.
// rielpay.NoTimeout disables the timeout for a single request.
func timeoutPtr(d time.Duration) *time.Duration { return &d }

// NoTimeout disables the per-request timeout when assigned to
// Request.Timeout.
var NoTimeout = timeoutPtr(0)
