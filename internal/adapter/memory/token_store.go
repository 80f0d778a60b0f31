package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sharugesh2303/chef/internal/interfaces"
)

// TokenStore maps issued bearer tokens to staff emails. Tokens live for the
// server process; clients discover invalidation through 401 responses.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

func (s *TokenStore) Issue(email string) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = email
	s.mu.Unlock()

	return token
}

func (s *TokenStore) Lookup(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, ok := s.tokens[token]
	return email, ok
}

func (s *TokenStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

var _ interfaces.TokenStore = (*TokenStore)(nil)
