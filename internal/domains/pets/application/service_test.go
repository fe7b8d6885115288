package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	petsmemory "github.com/vetlink/vetlink-api/internal/domains/pets/adapters/memory"
	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/pets/ports"
)

func TestAddPet_Success(t *testing.T) {
	svc := NewService(petsmemory.NewRepository())

	proj, err := svc.AddPet(context.Background(), types.AddPetInput{
		OwnerID: 42,
		Name:    "Rex",
		Species: "dog",
		Breed:   "beagle",
	})
	require.NoError(t, err)
	require.NotNil(t, proj)
	require.NotZero(t, proj.Entity.ID)
	require.Equal(t, "Rex", proj.Entity.Name)
	require.Equal(t, int64(42), proj.Entity.OwnerID)
	require.False(t, proj.Metadata.CreatedAt.IsZero())
}

func TestAddPet_InvalidInput(t *testing.T) {
	svc := NewService(petsmemory.NewRepository())

	_, err := svc.AddPet(context.Background(), types.AddPetInput{OwnerID: 42, Species: "dog"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddPet(context.Background(), types.AddPetInput{Name: "Rex", Species: "dog"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePet_AppliesChanges(t *testing.T) {
	svc := NewService(petsmemory.NewRepository())

	created, err := svc.AddPet(context.Background(), types.AddPetInput{
		OwnerID: 42,
		Name:    "Rex",
		Species: "dog",
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePet(context.Background(), types.UpdatePetInput{
		ID:      created.Entity.ID,
		Name:    "Rexy",
		Species: "dog",
		Breed:   "beagle",
	})
	require.NoError(t, err)
	require.Equal(t, "Rexy", updated.Entity.Name)
	require.Equal(t, "beagle", updated.Entity.Breed)
	require.Equal(t, int64(42), updated.Entity.OwnerID)
}

func TestListByOwner_FiltersOtherOwners(t *testing.T) {
	svc := NewService(petsmemory.NewRepository())
	ctx := context.Background()

	_, err := svc.AddPet(ctx, types.AddPetInput{OwnerID: 42, Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, types.AddPetInput{OwnerID: 42, Name: "Whiskers", Species: "cat"})
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, types.AddPetInput{OwnerID: 43, Name: "Tweety", Species: "bird"})
	require.NoError(t, err)

	mine, err := svc.ListByOwner(ctx, 42)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestDelete_RemovesEntry(t *testing.T) {
	svc := NewService(petsmemory.NewRepository())
	ctx := context.Background()

	created, err := svc.AddPet(ctx, types.AddPetInput{OwnerID: 42, Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Entity.ID))

	_, err = svc.GetByID(ctx, created.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestVerifyOwnership(t *testing.T) {
	svc := NewService(petsmemory.NewRepository())
	ctx := context.Background()

	mine, err := svc.AddPet(ctx, types.AddPetInput{OwnerID: 42, Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	theirs, err := svc.AddPet(ctx, types.AddPetInput{OwnerID: 43, Name: "Tweety", Species: "bird"})
	require.NoError(t, err)

	require.NoError(t, svc.VerifyOwnership(ctx, 42, []int64{mine.Entity.ID}))

	err = svc.VerifyOwnership(ctx, 42, []int64{mine.Entity.ID, theirs.Entity.ID})
	require.ErrorIs(t, err, ErrNotOwned)

	err = svc.VerifyOwnership(ctx, 42, []int64{9999})
	require.ErrorIs(t, err, ports.ErrNotFound)
}
