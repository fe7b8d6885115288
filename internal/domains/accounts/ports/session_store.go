package ports

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionStore abstracts session/token persistence. Lookup resolves a bearer
// token back to the username it was issued for.
type SessionStore interface {
	Save(ctx context.Context, username, token string) error
	Delete(ctx context.Context, username string) error
	Lookup(ctx context.Context, token string) (string, error)
	PurgeExpired(ctx context.Context) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, string, string) error { return nil }
func (noopSessionStore) Delete(context.Context, string) error       { return nil }
func (noopSessionStore) Lookup(context.Context, string) (string, error) {
	return "", ErrSessionNotFound
}
func (noopSessionStore) PurgeExpired(context.Context) error { return nil }
