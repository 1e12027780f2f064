package rielpay

import (
	"context"
	"sync"
)

// MemoryTokenStorage is an in-process TokenStorage for server-side use
// and tests. Safe for concurrent use.
type MemoryTokenStorage struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStorage returns an empty in-memory token storage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

// Get returns the stored token, or "".
func (s *MemoryTokenStorage) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Set stores the token, replacing any previous value.
func (s *MemoryTokenStorage) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
