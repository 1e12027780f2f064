package rielpay

import (
	"errors"
	"fmt"
	"time"

	"github.com/rielpay/client-go/internal/transport"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when API key auth is selected with
	// no key.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingOrigin is returned when API key auth is selected with
	// no origin.
	ErrMissingOrigin = errors.New("origin is required")

	// ErrAuthTokenMissing is returned when JWT auth has no stored token.
	ErrAuthTokenMissing = errors.New("authentication token missing")

	// ErrUnauthorized is returned when the credentials are invalid or
	// expired.
	ErrUnauthorized = errors.New("invalid or expired credentials")

	// ErrNotFound is returned when the requested resource does not
	// exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RielPayError is implemented by all SDK errors.
type RielPayError interface {
	error
	RielPayError() // marker method
}

// ConfigError indicates an invalid or contradictory configuration.
// It is raised synchronously at construction, or when a request needs
// an auth capability the configuration never supplied.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
	}
	return "invalid configuration: " + e.Message
}

// RielPayError implements the RielPayError interface.
func (e *ConfigError) RielPayError() {}

// Is implements errors.Is for sentinel error matching.
func (e *ConfigError) Is(target error) bool {
	switch e.Field {
	case "apiKey":
		return target == ErrMissingAPIKey
	case "origin":
		return target == ErrMissingOrigin
	case "tokenStorage":
		return target == ErrAuthTokenMissing && e.Message == "authentication token missing"
	}
	return false
}

// APIError represents a non-2xx HTTP response from the RielPay API.
type APIError struct {
	StatusCode int
	// Code is the machine-readable error code, when the server
	// supplied one.
	Code    string
	Message string
	// RequestID correlates the failure with server-side logs.
	RequestID string
	// Body is the decoded response body; empty when the body was
	// missing or not valid JSON.
	Body map[string]any
	// RetryAfter is the parsed Retry-After header, when present.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// RielPayError implements the RielPayError interface.
func (e *APIError) RielPayError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	}
	return false
}

// RateLimitError represents an HTTP 429 response.
type RateLimitError struct {
	Code      string
	Message   string
	RequestID string
	Body      map[string]any
	// RetryAfter is the server-suggested wait; zero when the server
	// sent none.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limit exceeded"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %v)", msg, e.RetryAfter)
	}
	return msg
}

// RielPayError implements the RielPayError interface.
func (e *RateLimitError) RielPayError() {}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// NetworkError represents a transport-level failure: the request never
// produced an HTTP response.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RielPayError implements the RielPayError interface.
func (e *NetworkError) RielPayError() {}

// TimeoutError represents a request attempt that exceeded its deadline.
type TimeoutError struct {
	Timeout time.Duration
	URL     string
	Attempt int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %v", e.Timeout)
}

// RielPayError implements the RielPayError interface.
func (e *TimeoutError) RielPayError() {}

// wrapError converts internal transport errors to public errors so
// that errors.Is and errors.As work with the exported types.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var cfgErr *transport.ConfigError
	if errors.As(err, &cfgErr) {
		return &ConfigError{Field: cfgErr.Field, Message: cfgErr.Message}
	}

	var rlErr *transport.RateLimitError
	if errors.As(err, &rlErr) {
		return &RateLimitError{
			Code:       rlErr.Code,
			Message:    rlErr.Message,
			RequestID:  rlErr.RequestID,
			Body:       rlErr.Body,
			RetryAfter: rlErr.RetryAfter,
		}
	}

	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
			RequestID:  apiErr.RequestID,
			Body:       apiErr.Body,
			RetryAfter: apiErr.RetryAfter,
		}
	}

	var netErr *transport.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{Err: netErr.Err, URL: netErr.URL, Attempt: netErr.Attempt}
	}

	var toErr *transport.TimeoutError
	if errors.As(err, &toErr) {
		return &TimeoutError{Timeout: toErr.Timeout, URL: toErr.URL, Attempt: toErr.Attempt}
	}

	return err
}
