package rielpay

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rielpay/client-go/internal/transport"
)

func TestOptions_Apply(t *testing.T) {
	storage := NewMemoryTokenStorage()
	httpClient := &http.Client{}
	logger := zerolog.Nop()

	cfg := transport.Config{}
	opts := []Option{
		WithAPIKey("key"),
		WithOrigin("acme"),
		WithMode(ModeSandbox),
		WithPlatform(PlatformDeno),
		WithBaseURL("https://local.test"),
		WithTimeout(5 * time.Second),
		WithMaxRetries(7),
		WithRetryDelays(200*time.Millisecond, 10*time.Second),
		WithTokenStorage(storage),
		WithHTTPClient(httpClient),
		WithLogger(logger),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Auth != transport.AuthAPIKey || cfg.APIKey != "key" {
		t.Errorf("auth = %s/%s", cfg.Auth, cfg.APIKey)
	}
	if cfg.Origin != "acme" {
		t.Errorf("Origin = %s", cfg.Origin)
	}
	if cfg.Mode != ModeSandbox {
		t.Errorf("Mode = %s", cfg.Mode)
	}
	if cfg.Platform != PlatformDeno {
		t.Errorf("Platform = %s", cfg.Platform)
	}
	if cfg.BaseURL != "https://local.test" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Retry.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialDelay != 200*time.Millisecond || cfg.Retry.MaxDelay != 10*time.Second {
		t.Errorf("delays = %v/%v", cfg.Retry.InitialDelay, cfg.Retry.MaxDelay)
	}
	if cfg.TokenStorage != TokenStorage(storage) {
		t.Error("TokenStorage not set")
	}
	if cfg.HTTPClient != httpClient {
		t.Error("HTTPClient not set")
	}
	if cfg.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestWithJWT(t *testing.T) {
	cfg := transport.Config{}
	WithJWT()(&cfg)
	if cfg.Auth != transport.AuthJWT {
		t.Errorf("Auth = %s, want jwt", cfg.Auth)
	}
}

func TestWithoutRetries(t *testing.T) {
	cfg := transport.Config{}
	WithoutRetries()(&cfg)
	if !cfg.Retry.Disabled {
		t.Error("Retry.Disabled = false")
	}
}
