package ports

import (
	"context"
	"errors"

	"github.com/vetlink/vetlink-api/internal/domains/accounts/domain"
)

var ErrNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid username or password")

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]*domain.User, error)
}
