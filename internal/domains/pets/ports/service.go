package ports

import (
	"context"

	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
)

// Service exposes pet directory use cases to adapters.
type Service interface {
	AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error)
	UpdatePet(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error)
	GetByID(ctx context.Context, id int64) (*types.PetProjection, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*types.PetProjection, error)
	Delete(ctx context.Context, id int64) error
	// VerifyOwnership checks that every referenced pet exists and belongs to
	// the given owner.
	VerifyOwnership(ctx context.Context, ownerID int64, petIDs []int64) error
}
