package ports

import "context"

// PetDirectory resolves pet references owned elsewhere. The appointment core
// treats pets as opaque foreign keys and only checks that the referenced pets
// exist and belong to the requesting owner.
type PetDirectory interface {
	VerifyOwnership(ctx context.Context, ownerID int64, petIDs []int64) error
}
