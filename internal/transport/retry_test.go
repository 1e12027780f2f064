package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestRetryConfig_Defaults(t *testing.T) {
	cfg := RetryConfig{}.withDefaults()

	if cfg.Disabled {
		t.Error("Disabled = true, want false")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.InitialDelay != time.Second {
		t.Errorf("InitialDelay = %v, want 1s", cfg.InitialDelay)
	}
	if cfg.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", cfg.MaxDelay)
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := RetryConfig{}.withDefaults()

	tests := []struct {
		name     string
		attempt  int
		err      error
		expected bool
	}{
		{"rate limit, first attempt", 0, &RateLimitError{}, true},
		{"rate limit, last attempt", 2, &RateLimitError{}, true},
		{"rate limit, budget spent", 3, &RateLimitError{}, false},
		{"network error", 0, &NetworkError{Err: errors.New("refused")}, true},
		{"timeout", 0, &TimeoutError{Timeout: time.Second}, true},
		{"503", 0, &APIError{StatusCode: 503}, true},
		{"500 is terminal", 0, &APIError{StatusCode: 500}, false},
		{"502 is terminal", 0, &APIError{StatusCode: 502}, false},
		{"404 is terminal", 0, &APIError{StatusCode: 404}, false},
		{"401 is terminal", 0, &APIError{StatusCode: 401}, false},
		{"config error is terminal", 0, &ConfigError{Message: "bad"}, false},
		{"plain error is terminal", 0, errors.New("boom"), false},
		{"caller cancellation is terminal", 0, context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ShouldRetry(tt.attempt, tt.err); got != tt.expected {
				t.Errorf("ShouldRetry(%d, %v) = %v, want %v", tt.attempt, tt.err, got, tt.expected)
			}
		})
	}
}

func TestRetryConfig_ShouldRetry_Disabled(t *testing.T) {
	cfg := RetryConfig{Disabled: true}.withDefaults()
	if cfg.ShouldRetry(0, &TimeoutError{}) {
		t.Error("ShouldRetry() = true with retries disabled")
	}
}

func TestRetryConfig_Backoff_NoJitterMidpoint(t *testing.T) {
	cfg := RetryConfig{
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		rand:         func() float64 { return 0.5 }, // midpoint: jitter cancels out
	}.withDefaults()

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second}, // 32s capped at 30s
		{6, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt %d", tt.attempt), func(t *testing.T) {
			if got := cfg.backoff(tt.attempt); got != tt.expected {
				t.Errorf("backoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestRetryConfig_Backoff_JitterBounds(t *testing.T) {
	cfg := RetryConfig{
		InitialDelay: time.Second,
		MaxDelay:     time.Minute,
	}.withDefaults()

	// ±25% jitter: attempt N must land in [0.75, 1.25] * 2^N seconds.
	for attempt := 0; attempt <= 3; attempt++ {
		base := time.Duration(1<<attempt) * time.Second
		lo := base * 3 / 4
		hi := base * 5 / 4
		for i := 0; i < 100; i++ {
			d := cfg.backoff(attempt)
			if d < lo || d > hi {
				t.Fatalf("backoff(%d) = %v, want within [%v, %v]", attempt, d, lo, hi)
			}
		}
	}
}

func TestRetryConfig_Backoff_JitterNeverExceedsMaxDelay(t *testing.T) {
	cfg := RetryConfig{
		InitialDelay: 10 * time.Second,
		MaxDelay:     30 * time.Second,
	}.withDefaults()

	for i := 0; i < 100; i++ {
		if d := cfg.backoff(5); d > 30*time.Second {
			t.Fatalf("backoff(5) = %v, exceeds MaxDelay", d)
		}
	}
}

func TestRetryConfig_Delay_PrefersRetryAfter(t *testing.T) {
	cfg := RetryConfig{
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
	}.withDefaults()

	tests := []struct {
		name string
		err  error
		want time.Duration
	}{
		{"rate limit with retry-after", &RateLimitError{RetryAfter: 2 * time.Second}, 2 * time.Second},
		{"api error with retry-after", &APIError{StatusCode: 503, RetryAfter: 5 * time.Second}, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Delay(0, tt.err); got != tt.want {
				t.Errorf("Delay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryConfig_Delay_FallsBackToBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		rand:         func() float64 { return 0.5 },
	}.withDefaults()

	// No Retry-After on the error: exponential backoff.
	if got := cfg.Delay(1, &RateLimitError{}); got != 2*time.Second {
		t.Errorf("Delay(1) = %v, want 2s", got)
	}
}

func TestRetryConfig_ParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	cfg := RetryConfig{
		MaxDelay: 30 * time.Second,
		now:      func() time.Time { return now },
	}.withDefaults()

	tests := []struct {
		name   string
		value  string
		want   time.Duration
		wantOK bool
	}{
		{"integer seconds", "2", 2 * time.Second, true},
		{"zero seconds", "0", 0, true},
		{"negative seconds clamp to zero", "-3", 0, true},
		{"seconds clamped to max delay", "120", 30 * time.Second, true},
		{"http date in the future", now.Add(5 * time.Second).Format(http.TimeFormat), 5 * time.Second, true},
		{"http date in the past clamps to zero", now.Add(-time.Minute).Format(http.TimeFormat), 0, true},
		{"http date clamped to max delay", now.Add(time.Hour).Format(http.TimeFormat), 30 * time.Second, true},
		{"malformed falls through", "soon", 0, false},
		{"empty falls through", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.parseRetryAfter(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("parseRetryAfter(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRetryConfig_Wait(t *testing.T) {
	cfg := RetryConfig{}.withDefaults()

	start := time.Now()
	if err := cfg.Wait(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Wait() returned too early: %v", elapsed)
	}
}

func TestRetryConfig_Wait_ContextCancellation(t *testing.T) {
	cfg := RetryConfig{}.withDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := cfg.Wait(ctx, 10*time.Second)
	if err != context.Canceled {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func BenchmarkRetryConfig_Backoff(b *testing.B) {
	cfg := RetryConfig{}.withDefaults()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.backoff(i % 5)
	}
}
