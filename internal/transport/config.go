package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Mode selects which environment the client talks to.
type Mode string

const (
	// ModeSandbox targets the sandbox environment.
	ModeSandbox Mode = "sandbox"
	// ModeProduction targets the production environment.
	ModeProduction Mode = "production"
)

// Platform identifies the execution environment the SDK runs in. It
// mirrors the platform tags used by the RielPay API and gates which
// authentication strategies are permitted.
type Platform string

const (
	PlatformNode        Platform = "node"
	PlatformBun         Platform = "bun"
	PlatformDeno        Platform = "deno"
	PlatformBrowser     Platform = "browser"
	PlatformReactNative Platform = "react-native"
)

// AuthKind identifies the authentication strategy.
type AuthKind string

const (
	// AuthAPIKey authenticates with a static API key, exchanged for a
	// bearer access token by the identity connect flow.
	AuthAPIKey AuthKind = "api-key"
	// AuthJWT authenticates with an externally issued JWT, read from
	// token storage (or carried by cookies on browser platforms).
	AuthJWT AuthKind = "jwt"
)

// Base URLs per mode.
var baseURLs = map[Mode]string{
	ModeSandbox:    "https://sandbox.api.rielpay.co",
	ModeProduction: "https://api.rielpay.co",
}

// Default configuration values.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultInitialDelay = time.Second
	DefaultMaxDelay     = 30 * time.Second
)

// authCompat maps (platform, auth kind) to a rejection reason. An empty
// entry means the combination is allowed. Adding a platform or strategy
// is a table edit, not a control-flow change.
var authCompat = map[Platform]map[AuthKind]string{
	PlatformNode:        {},
	PlatformBun:         {},
	PlatformDeno:        {},
	PlatformBrowser:     {AuthAPIKey: "API key authentication is not allowed on browser platforms"},
	PlatformReactNative: {AuthAPIKey: "API key authentication is not allowed on browser-like platforms"},
}

// jwtStorageExempt lists platforms where JWT auth works without token
// storage because credentials travel in cookies.
var jwtStorageExempt = map[Platform]bool{
	PlatformBrowser: true,
}

// Config describes how to reach the API and authenticate. It is
// validated once, at construction, and never mutated afterwards.
type Config struct {
	// Origin is the tenant namespace. Required for API key auth.
	Origin string
	// Auth selects the authentication strategy.
	Auth AuthKind
	// APIKey is the static key for AuthAPIKey.
	APIKey string
	// Mode selects sandbox or production. Default: production.
	Mode Mode
	// Platform is the execution environment tag. Default: node.
	Platform Platform
	// BaseURL overrides the mode-derived base URL when non-empty.
	BaseURL string
	// Timeout is the default per-request timeout. 0 disables it.
	Timeout time.Duration
	// Retry configures the retry policy.
	Retry RetryConfig
	// TokenStorage persists the bearer token for JWT auth. Required
	// for AuthJWT outside browser platforms.
	TokenStorage TokenStorage
	// HTTPClient overrides the default http.Client.
	HTTPClient *http.Client
	// Logger receives debug-level dispatch and retry events. Nil
	// disables logging.
	Logger *zerolog.Logger

	timeoutSet bool
}

// SetTimeout sets the default per-request timeout. Unlike assigning the
// field directly, it marks the value as explicitly chosen so that a
// zero (timeout disabled) survives default filling.
func (c *Config) SetTimeout(d time.Duration) {
	c.Timeout = d
	c.timeoutSet = true
}

// withDefaults returns a copy of the config with defaults applied.
// Applying it twice yields the same result.
func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeProduction
	}
	if c.Platform == "" {
		c.Platform = PlatformNode
	}
	if c.Timeout == 0 && !c.timeoutSet {
		c.Timeout = DefaultTimeout
	}
	c.Retry = c.Retry.withDefaults()
	return c
}

// validate checks the fully defaulted config. All failures are
// ConfigErrors and surface at construction, never at first request.
func (c Config) validate() error {
	if _, ok := baseURLs[c.Mode]; !ok {
		return &ConfigError{Field: "mode", Message: "mode must be \"sandbox\" or \"production\""}
	}
	if _, ok := authCompat[c.Platform]; !ok {
		return &ConfigError{Field: "platform", Message: "unknown platform " + string(c.Platform)}
	}
	if c.Auth != AuthAPIKey && c.Auth != AuthJWT {
		return &ConfigError{Field: "auth", Message: "an authentication strategy is required"}
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "timeout", Message: "timeout must not be negative"}
	}
	if err := c.Retry.validate(); err != nil {
		return err
	}

	if reason, forbidden := authCompat[c.Platform][c.Auth]; forbidden {
		return &ConfigError{Field: "auth", Message: reason}
	}

	switch c.Auth {
	case AuthAPIKey:
		if strings.TrimSpace(c.APIKey) == "" {
			return &ConfigError{Field: "apiKey", Message: "API key is required"}
		}
		if strings.TrimSpace(c.Origin) == "" {
			return &ConfigError{Field: "origin", Message: "origin is required for API key authentication"}
		}
	case AuthJWT:
		if c.TokenStorage == nil && !jwtStorageExempt[c.Platform] {
			return &ConfigError{Field: "tokenStorage", Message: "token storage is required for JWT authentication on " + string(c.Platform)}
		}
	}

	return nil
}

// baseURL resolves the effective base URL.
func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return baseURLs[c.Mode]
}
