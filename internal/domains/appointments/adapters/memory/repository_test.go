package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

func newAppointment(t *testing.T, vetID, ownerID int64, createdAt time.Time) *domain.Appointment {
	t.Helper()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	appointment, err := domain.NewAppointment(uuid.New(), vetID, ownerID, []int64{1},
		[]timeslot.Slot{{Start: start, End: start.Add(timeslot.Length)}}, createdAt)
	require.NoError(t, err)
	return appointment
}

func TestRepository_CreateAndGetByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	now := time.Now()

	appointment := newAppointment(t, 7, 42, now)
	created, err := repo.Create(ctx, appointment)
	require.NoError(t, err)
	require.Equal(t, appointment.ID, created.ID)

	loaded, err := repo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, loaded.Status)

	// The stored aggregate is insulated from later caller mutations.
	loaded.PetIDs[0] = 999
	reloaded, err := repo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), reloaded.PetIDs[0])

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateGuardsOnExpectedStatus(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	now := time.Now()

	appointment := newAppointment(t, 7, 42, now)
	_, err := repo.Create(ctx, appointment)
	require.NoError(t, err)

	// Two actors load the same pending aggregate.
	first, err := repo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)

	require.NoError(t, first.Reject(domain.ActorVet, "fully booked", now))
	_, err = repo.Update(ctx, first, domain.StatusPending)
	require.NoError(t, err)

	// The second writer's expected status is stale.
	require.NoError(t, second.Cancel(domain.ActorPetOwner, "changed my mind", now))
	_, err = repo.Update(ctx, second, domain.StatusPending)
	require.ErrorIs(t, err, ports.ErrConcurrencyConflict)

	stored, err := repo.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, stored.Status)
}

func TestRepository_UpdateUnknownAppointment(t *testing.T) {
	repo := NewRepository()
	appointment := newAppointment(t, 7, 42, time.Now())

	_, err := repo.Update(context.Background(), appointment, domain.StatusPending)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListsFilterAndSort(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	older := newAppointment(t, 7, 42, base)
	newer := newAppointment(t, 7, 42, base.Add(time.Hour))
	other := newAppointment(t, 8, 43, base.Add(2*time.Hour))
	for _, a := range []*domain.Appointment{newer, older, other} {
		_, err := repo.Create(ctx, a)
		require.NoError(t, err)
	}

	byVet, err := repo.ListByVet(ctx, 7)
	require.NoError(t, err)
	require.Len(t, byVet, 2)
	require.Equal(t, older.ID, byVet[0].ID)
	require.Equal(t, newer.ID, byVet[1].ID)

	byOwner, err := repo.ListByOwner(ctx, 43)
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	require.Equal(t, other.ID, byOwner[0].ID)
}

func TestRepository_ListConfirmedEndedBefore(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	confirmed := newAppointment(t, 7, 42, now)
	require.NoError(t, confirmed.Confirm(domain.ActorVet, confirmed.RequestedSlots[:1], now))
	_, err := repo.Create(ctx, confirmed)
	require.NoError(t, err)

	pending := newAppointment(t, 7, 42, now)
	_, err = repo.Create(ctx, pending)
	require.NoError(t, err)

	slotEnd := confirmed.Confirmation.Slot.End

	elapsed, err := repo.ListConfirmedEndedBefore(ctx, slotEnd.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, elapsed, 1)
	require.Equal(t, confirmed.ID, elapsed[0].ID)

	notYet, err := repo.ListConfirmedEndedBefore(ctx, slotEnd)
	require.NoError(t, err)
	require.Empty(t, notYet)
}
