package rielpay

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rielpay/client-go/internal/transport"
)

// Mode selects which environment the client talks to.
type Mode = transport.Mode

const (
	// ModeSandbox targets the sandbox environment.
	ModeSandbox = transport.ModeSandbox
	// ModeProduction targets the production environment.
	ModeProduction = transport.ModeProduction
)

// Platform identifies the execution environment the SDK runs in.
type Platform = transport.Platform

const (
	PlatformNode        = transport.PlatformNode
	PlatformBun         = transport.PlatformBun
	PlatformDeno        = transport.PlatformDeno
	PlatformBrowser     = transport.PlatformBrowser
	PlatformReactNative = transport.PlatformReactNative
)

// TokenStorage persists the bearer token for JWT authentication.
type TokenStorage = transport.TokenStorage

// Request describes a single HTTP call executed by the client.
type Request = transport.Request

// Option configures the client.
type Option func(*transport.Config)

// WithAPIKey selects API key authentication with the given key.
func WithAPIKey(key string) Option {
	return func(c *transport.Config) {
		c.Auth = transport.AuthAPIKey
		c.APIKey = key
	}
}

// WithJWT selects JWT authentication. Outside browser platforms a
// token storage must also be supplied via WithTokenStorage.
func WithJWT() Option {
	return func(c *transport.Config) {
		c.Auth = transport.AuthJWT
	}
}

// WithOrigin sets the tenant origin. Required for API key auth.
func WithOrigin(origin string) Option {
	return func(c *transport.Config) {
		c.Origin = origin
	}
}

// WithMode selects the target environment. Default: production.
func WithMode(mode Mode) Option {
	return func(c *transport.Config) {
		c.Mode = mode
	}
}

// WithPlatform sets the execution environment tag. Default: node.
func WithPlatform(platform Platform) Option {
	return func(c *transport.Config) {
		c.Platform = platform
	}
}

// WithBaseURL overrides the mode-derived base URL.
func WithBaseURL(url string) Option {
	return func(c *transport.Config) {
		c.BaseURL = url
	}
}

// WithTimeout sets the default per-request timeout. Zero disables the
// timeout entirely. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *transport.Config) {
		c.SetTimeout(timeout)
	}
}

// WithMaxRetries sets the number of retry attempts after the initial
// one. Zero means "never retry". Default: 3.
func WithMaxRetries(count int) Option {
	return func(c *transport.Config) {
		c.Retry.SetMaxRetries(count)
	}
}

// WithRetryDelays sets the initial and maximum backoff delays.
// Defaults: 1s and 30s.
func WithRetryDelays(initial, max time.Duration) Option {
	return func(c *transport.Config) {
		c.Retry.InitialDelay = initial
		c.Retry.MaxDelay = max
	}
}

// WithoutRetries disables the retry policy entirely.
func WithoutRetries() Option {
	return func(c *transport.Config) {
		c.Retry.Disabled = true
	}
}

// WithTokenStorage supplies the token persistence capability used by
// JWT authentication and SetJWTToken.
func WithTokenStorage(storage TokenStorage) Option {
	return func(c *transport.Config) {
		c.TokenStorage = storage
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *transport.Config) {
		c.HTTPClient = client
	}
}

// WithLogger enables debug logging of dispatches and retry decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *transport.Config) {
		c.Logger = &logger
	}
}
