package ports

import (
	"context"

	"github.com/vetlink/vetlink-api/internal/domains/accounts/domain"
)

// Service exposes account bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, username string)
	// Authenticate resolves a session token to the account it belongs to.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// PurgeSessions removes expired sessions, for housekeeping jobs.
	PurgeSessions(ctx context.Context) error
}
