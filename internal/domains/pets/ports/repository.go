package ports

import (
	"context"
	"errors"

	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/pets/domain"
)

var ErrNotFound = errors.New("pet not found")

type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*types.PetProjection, error)
	GetByID(ctx context.Context, id int64) (*types.PetProjection, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*types.PetProjection, error)
	Delete(ctx context.Context, id int64) error
}
