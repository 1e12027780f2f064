package transport

import (
	"context"
	"sync"
)

// TokenStorage is a pluggable capability for persisting the bearer
// token used by JWT authentication. Implementations must be safe for
// concurrent use.
type TokenStorage interface {
	// Get returns the stored token, or "" when none is stored.
	Get(ctx context.Context) (string, error)
	// Set stores the token, replacing any previous value.
	Set(ctx context.Context, token string) error
	// Clear removes the stored token.
	Clear(ctx context.Context) error
}

// Session holds the mutable per-session state: the access token
// established by the identity connect flow, the resolved URN, and the
// origin. Ordinary request execution only reads it; writes happen
// through the explicit setters invoked by the registration flow.
type Session struct {
	mu          sync.RWMutex
	accessToken string
	urn         string
	origin      string
}

// SetAccessToken installs the bearer token. Once set, it replaces the
// raw API key in the Authorization header.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// AccessToken returns the current bearer token, or "".
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetURN records the resolved identity URN for the session.
func (s *Session) SetURN(urn string) {
	s.mu.Lock()
	s.urn = urn
	s.mu.Unlock()
}

// URN returns the resolved identity URN, or "".
func (s *Session) URN() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.urn
}

// SetOrigin updates the tenant origin for the session.
func (s *Session) SetOrigin(origin string) {
	s.mu.Lock()
	s.origin = origin
	s.mu.Unlock()
}

// Origin returns the tenant origin.
func (s *Session) Origin() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}
