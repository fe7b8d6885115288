package application

import (
	"context"
	"fmt"

	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/pets/domain"
	"github.com/vetlink/vetlink-api/internal/domains/pets/ports"
)

// Service exposes pet directory use cases.
type Service struct {
	repo ports.Repository
}

var _ ports.Service = (*Service)(nil)

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := domain.NewPet(0, input.OwnerID, input.Name, input.Species)
	if err != nil {
		return nil, mapError(err)
	}
	pet.Breed = input.Breed
	return s.repo.Save(ctx, pet)
}

func (s *Service) UpdatePet(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	pet := existing.Entity
	if input.OwnerID != 0 {
		if err := pet.SetOwner(input.OwnerID); err != nil {
			return nil, mapError(err)
		}
	}
	if err := pet.SetName(input.Name); err != nil {
		return nil, mapError(err)
	}
	if err := pet.SetSpecies(input.Species); err != nil {
		return nil, mapError(err)
	}
	pet.Breed = input.Breed
	return s.repo.Save(ctx, pet)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*types.PetProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*types.PetProjection, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// VerifyOwnership checks that every referenced pet exists and belongs to the
// given owner. Used by the appointments context before accepting a request.
func (s *Service) VerifyOwnership(ctx context.Context, ownerID int64, petIDs []int64) error {
	for _, petID := range petIDs {
		projection, err := s.repo.GetByID(ctx, petID)
		if err != nil {
			return err
		}
		if projection.Entity.OwnerID != ownerID {
			return fmt.Errorf("%w: pet %d", ErrNotOwned, petID)
		}
	}
	return nil
}
