package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// requestIDHeaders are checked in order for a correlation ID.
var requestIDHeaders = []string{"X-Request-Id", "X-Correlation-Id"}

// Request describes a single HTTP call. The path may already carry a
// query string; the transport never builds or rewrites queries — that
// is the caller's job.
type Request struct {
	Method string
	Path   string
	// Body is JSON-serialized when non-nil.
	Body any
	// Header holds extra headers. Caller-supplied values win over the
	// computed defaults and auth headers.
	Header http.Header
	// Timeout overrides the session default for this request. Nil
	// means "use the default"; a pointer to zero disables the timeout
	// entirely.
	Timeout *time.Duration
}

// Client executes described HTTP requests against the RielPay API:
// auth header synthesis, timeout enforcement, retry with backoff, and
// error classification. Safe for concurrent use; concurrent calls are
// fully independent.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     zerolog.Logger

	// sleep waits between attempts. Injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New validates the config and builds a client. All configuration
// failures surface here as ConfigErrors, never at first request.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    cfg.baseURL(),
		httpClient: httpClient,
		session:    &Session{origin: cfg.Origin},
		logger:     logger,
	}
	c.sleep = cfg.Retry.Wait
	return c, nil
}

// Session returns the mutable session state owned by this client.
func (c *Client) Session() *Session {
	return c.session
}

// TokenStorage returns the configured token storage, or nil.
func (c *Client) TokenStorage() TokenStorage {
	return c.cfg.TokenStorage
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes the request, decoding a successful JSON response into
// result (which may be nil). Transient failures — rate limits, network
// errors, timeouts, and 503 responses — are retried with backoff until
// the retry budget is spent; the last typed error is then returned.
// Each attempt gets a fresh timeout; there is no shrinking per-call
// wall-clock budget across retries.
func (c *Client) Do(ctx context.Context, req *Request, result any) error {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		err := c.attempt(ctx, req, body, result, attempt)
		if err == nil {
			return nil
		}
		if !c.cfg.Retry.ShouldRetry(attempt, err) {
			return err
		}

		delay := c.cfg.Retry.Delay(attempt, err)
		c.logger.Debug().
			Str("method", req.Method).
			Str("path", req.Path).
			Int("attempt", attempt).
			Dur("delay", delay).
			Err(err).
			Msg("retrying request")

		if werr := c.sleep(ctx, delay); werr != nil {
			// Caller cancelled mid-backoff; the last typed error is
			// still the most useful thing to surface.
			return err
		}
	}
}

func (c *Client) attempt(ctx context.Context, req *Request, body []byte, result any, attempt int) error {
	timeout := c.cfg.Timeout
	if req.Timeout != nil {
		timeout = *req.Timeout
	}

	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fullURL := c.baseURL + req.Path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if !isPublicRoute(req.Path) {
		if err := c.applyAuth(ctx, httpReq); err != nil {
			return err
		}
	}

	// Caller-supplied headers win on conflicts.
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("attempt", attempt).
		Msg("dispatching request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.classifyDispatchError(ctx, attemptCtx, err, fullURL, timeout, attempt)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err, URL: fullURL, Code: CodeNetworkError, Attempt: attempt}
	}

	if resp.StatusCode >= 400 {
		return c.parseErrorResponse(resp, raw)
	}

	if result != nil && len(raw) > 0 {
		// A malformed success body decodes as an empty object rather
		// than failing the request.
		_ = json.Unmarshal(raw, result)
	}
	return nil
}

// applyAuth synthesizes the Authorization header for non-public routes.
func (c *Client) applyAuth(ctx context.Context, req *http.Request) error {
	switch c.cfg.Auth {
	case AuthAPIKey:
		if token := c.session.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			return nil
		}
		// No access token yet: send the raw key verbatim so a
		// never-connected client can still call endpoints that accept
		// the key directly.
		req.Header.Set("Authorization", c.cfg.APIKey)
	case AuthJWT:
		if c.cfg.Platform == PlatformBrowser {
			// Credentials travel in cookies on browser platforms.
			return nil
		}
		token, err := c.cfg.TokenStorage.Get(ctx)
		if err != nil {
			return fmt.Errorf("read token storage: %w", err)
		}
		if token == "" {
			return &ConfigError{Field: "tokenStorage", Message: "authentication token missing"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// classifyDispatchError maps a transport-level failure to a typed
// error. A per-attempt deadline becomes a TimeoutError; caller
// cancellation propagates untouched; everything else is a NetworkError,
// with failures that are not even url.Errors landing in the unknown
// bucket.
func (c *Client) classifyDispatchError(ctx, attemptCtx context.Context, err error, fullURL string, timeout time.Duration, attempt int) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout, URL: fullURL, Attempt: attempt}
	}

	code := CodeNetworkError
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		code = CodeUnknownError
	}
	return &NetworkError{Err: err, URL: fullURL, Code: code, Attempt: attempt}
}

func (c *Client) parseErrorResponse(resp *http.Response, raw []byte) error {
	body := map[string]any{}
	// Malformed bodies decode as an empty object.
	_ = json.Unmarshal(raw, &body)

	var requestID string
	for _, h := range requestIDHeaders {
		if v := resp.Header.Get(h); v != "" {
			requestID = v
			break
		}
	}

	code, _ := body["code"].(string)
	message := messageFrom(body)
	retryAfter, _ := c.cfg.Retry.parseRetryAfter(resp.Header.Get("Retry-After"))

	if resp.StatusCode == http.StatusTooManyRequests {
		if message == "" {
			message = "rate limit exceeded"
		}
		if code == "" {
			code = CodeRateLimited
		}
		return &RateLimitError{
			Code:       code,
			Message:    message,
			RequestID:  requestID,
			Body:       body,
			RetryAfter: retryAfter,
		}
	}

	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    message,
		RequestID:  requestID,
		Body:       body,
		RetryAfter: retryAfter,
	}
}

func messageFrom(body map[string]any) string {
	if m, ok := body["message"].(string); ok && m != "" {
		return m
	}
	if m, ok := body["error"].(string); ok && m != "" {
		return m
	}
	return ""
}
