package mapper

import (
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
)

// MutationPet is the wire form used to create or update a directory entry.
type MutationPet struct {
	OwnerID int64  `json:"ownerId"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
}

// PetView is the wire form of a directory entry.
type PetView struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToAddInput converts the wire payload to a creation input.
func ToAddInput(payload MutationPet) types.AddPetInput {
	return types.AddPetInput{
		OwnerID: payload.OwnerID,
		Name:    payload.Name,
		Species: payload.Species,
		Breed:   payload.Breed,
	}
}

// ToUpdateInput converts the wire payload to an update input.
func ToUpdateInput(id int64, payload MutationPet) types.UpdatePetInput {
	return types.UpdatePetInput{
		ID:      id,
		OwnerID: payload.OwnerID,
		Name:    payload.Name,
		Species: payload.Species,
		Breed:   payload.Breed,
	}
}

// FromProjection converts a projection to its wire form.
func FromProjection(projection *types.PetProjection) PetView {
	pet := projection.Entity
	return PetView{
		ID:        pet.ID,
		OwnerID:   pet.OwnerID,
		Name:      pet.Name,
		Species:   pet.Species,
		Breed:     pet.Breed,
		CreatedAt: projection.Metadata.CreatedAt,
		UpdatedAt: projection.Metadata.UpdatedAt,
	}
}

// FromProjectionList converts projections to their wire form.
func FromProjectionList(projections []*types.PetProjection) []PetView {
	views := make([]PetView, 0, len(projections))
	for _, projection := range projections {
		views = append(views, FromProjection(projection))
	}
	return views
}
