package types

import (
	"github.com/vetlink/vetlink-api/internal/domains/pets/domain"
	"github.com/vetlink/vetlink-api/internal/shared/projection"
)

// PetProjection pairs the pet entity with persistence metadata.
type PetProjection = projection.Projection[*domain.Pet]

// AddPetInput carries the fields needed to register a pet.
type AddPetInput struct {
	OwnerID int64
	Name    string
	Species string
	Breed   string
}

// UpdatePetInput mutates an existing directory entry.
type UpdatePetInput struct {
	ID      int64
	OwnerID int64
	Name    string
	Species string
	Breed   string
}
