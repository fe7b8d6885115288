package memory

import (
	"context"
	"sync"

	"github.com/vetlink/vetlink-api/internal/domains/accounts/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu      sync.RWMutex
	byUser  map[string]string
	byToken map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byUser:  make(map[string]string),
		byToken: make(map[string]string),
	}
}

func (s *SessionStore) Save(_ context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, ok := s.byUser[username]; ok {
		delete(s.byToken, previous)
	}
	s.byUser[username] = token
	s.byToken[token] = username
	return nil
}

func (s *SessionStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.byUser[username]; ok {
		delete(s.byToken, token)
	}
	delete(s.byUser, username)
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username, ok := s.byToken[token]
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	return username, nil
}

// PurgeExpired is a no-op; in-memory sessions live for the process lifetime.
func (s *SessionStore) PurgeExpired(context.Context) error { return nil }
