package transport

import (
	"errors"
	"fmt"
	"time"
)

// Machine-readable error codes carried by transport failures.
const (
	CodeNetworkError = "NETWORK_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeUnknownError = "UNKNOWN_ERROR"
)

// ConfigError indicates an invalid or contradictory configuration. It
// is raised at construction, or when a request needs an auth capability
// the config never supplied. Never retried.
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

// APIError represents a non-2xx HTTP response.
type APIError struct {
	StatusCode int
	// Code is the machine-readable error code from the response body,
	// when the server supplied one.
	Code    string
	Message string
	// RequestID is the correlation ID from the response headers, for
	// matching against server-side logs.
	RequestID string
	// Body is the decoded response body. Empty map when the body was
	// missing or not valid JSON.
	Body map[string]any
	// RetryAfter is the parsed Retry-After header, when present,
	// clamped to the retry policy's MaxDelay.
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

// RateLimitError represents an HTTP 429 response.
type RateLimitError struct {
	// Code is the machine-readable error code from the response body,
	// when the server supplied one.
	Code      string
	Message   string
	RequestID string
	Body      map[string]any
	// RetryAfter is the server-suggested wait, clamped to the retry
	// policy's MaxDelay. Zero when the server sent none.
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

// NetworkError represents a transport-level failure: the request never
// produced an HTTP response.
type NetworkError struct {
	Err error
	URL string
	// Code distinguishes recognized transport failures from the
	// unknown bucket.
	Code    string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TimeoutError represents an attempt that exceeded its deadline. The
// timed-out attempt still counts against the retry budget; a retried
// attempt gets a fresh timeout.
type TimeoutError struct {
	// Timeout is the deadline that was in effect for the attempt.
	Timeout time.Duration
	URL     string
	Attempt int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %v", e.Timeout)
}

// IsRetryable reports whether an error belongs to the transient class:
// rate limits, network failures, timeouts, and 503 responses. Config
// errors, caller cancellations, and every other API status are
// terminal.
func IsRetryable(err error) bool {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == 503
	}
	return false
}
