package api

import "sync"

// TokenStore holds the bearer token attached to outgoing requests. Each client
// owns its store unless one is injected with WithTokenStore.
type TokenStore interface {
	AccessToken() string
	SetAccessToken(token string)
	ClearAccessToken()
}

// MemoryTokenStore is an in-memory TokenStore safe for concurrent use.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// AccessToken returns the current token, or "" when none is set.
func (s *MemoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetAccessToken replaces the current token.
func (s *MemoryTokenStore) SetAccessToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// ClearAccessToken removes the current token.
func (s *MemoryTokenStore) ClearAccessToken() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
