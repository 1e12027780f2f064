package transport

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig configures retry behavior for failed requests. The zero
// value means "enabled with defaults"; set Disabled to opt out.
type RetryConfig struct {
	// Disabled turns retries off entirely.
	Disabled bool
	// MaxRetries is the maximum number of retry attempts after the
	// initial one.
	MaxRetries int
	// InitialDelay is the backoff delay for the first retry.
	InitialDelay time.Duration
	// MaxDelay caps every computed delay, including server-suggested
	// Retry-After values.
	MaxDelay time.Duration

	// rand returns a uniform value in [0, 1). Injectable for tests.
	rand func() float64
	// now returns the current time, used for HTTP-date Retry-After
	// values. Injectable for tests.
	now func() time.Time

	maxRetriesSet bool
}

// SetMaxRetries sets the retry budget, marking zero as an explicit
// choice rather than "use the default".
func (r *RetryConfig) SetMaxRetries(n int) {
	r.MaxRetries = n
	r.maxRetriesSet = true
}

func (r RetryConfig) withDefaults() RetryConfig {
	if r.MaxRetries == 0 && !r.maxRetriesSet {
		r.MaxRetries = DefaultMaxRetries
	}
	if r.InitialDelay == 0 {
		r.InitialDelay = DefaultInitialDelay
	}
	if r.MaxDelay == 0 {
		r.MaxDelay = DefaultMaxDelay
	}
	if r.rand == nil {
		r.rand = rand.Float64
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

func (r RetryConfig) validate() error {
	if r.MaxRetries < 0 {
		return &ConfigError{Field: "retry.maxRetries", Message: "maxRetries must not be negative"}
	}
	if r.InitialDelay < 0 {
		return &ConfigError{Field: "retry.initialDelay", Message: "initialDelay must not be negative"}
	}
	if r.MaxDelay < 0 {
		return &ConfigError{Field: "retry.maxDelay", Message: "maxDelay must not be negative"}
	}
	return nil
}

// ShouldRetry reports whether err warrants another attempt. Retryable
// failures are rate limits, network failures, timeouts, and 503
// responses; everything else is terminal. The classification is a
// single exhaustive match so new error kinds cannot be retried by
// accident.
func (r RetryConfig) ShouldRetry(attempt int, err error) bool {
	if r.Disabled || attempt >= r.MaxRetries {
		return false
	}
	return IsRetryable(err)
}

// Delay computes the wait before the next attempt. A server-suggested
// Retry-After on the failing response wins; otherwise exponential
// backoff with symmetric ±25% jitter, capped at MaxDelay.
func (r RetryConfig) Delay(attempt int, err error) time.Duration {
	if ra, ok := retryAfterOf(err); ok {
		return ra
	}
	return r.backoff(attempt)
}

func (r RetryConfig) backoff(attempt int) time.Duration {
	delay := float64(r.InitialDelay) * math.Pow(2, float64(attempt))
	if delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	jitter := delay * 0.25
	delay = delay - jitter + r.rand()*2*jitter

	if delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}
	return time.Duration(delay)
}

// Wait sleeps for the computed delay or until the context is done.
func (r RetryConfig) Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryAfterOf extracts the server-suggested delay carried by a rate
// limit or API error, if any.
func retryAfterOf(err error) (time.Duration, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter, true
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.RetryAfter > 0 {
		return ae.RetryAfter, true
	}
	return 0, false
}

// parseRetryAfter parses a Retry-After header value as an integer
// number of seconds or an HTTP date, clamped to [0, max]. A value that
// parses as neither is ignored (falling through to backoff), never an
// error.
func (r RetryConfig) parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return clampDelay(time.Duration(secs)*time.Second, r.MaxDelay), true
	}
	if t, err := http.ParseTime(value); err == nil {
		return clampDelay(t.Sub(r.now()), r.MaxDelay), true
	}
	return 0, false
}

func clampDelay(d, max time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > max {
		return max
	}
	return d
}
