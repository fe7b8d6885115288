package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	appointmentsmemory "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/memory"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func slotAt(hour, minute int) timeslot.Slot {
	start := time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	return timeslot.Slot{Start: start, End: start.Add(timeslot.Length)}
}

type recordingNotifier struct {
	statuses []domain.Status
}

func (n *recordingNotifier) AppointmentChanged(_ context.Context, appointment *domain.Appointment) error {
	n.statuses = append(n.statuses, appointment.Status)
	return nil
}

type recordingScheduler struct {
	scheduled []uuid.UUID
	err       error
}

func (s *recordingScheduler) ScheduleCompletion(_ context.Context, appointment *domain.Appointment) error {
	if s.err != nil {
		return s.err
	}
	s.scheduled = append(s.scheduled, appointment.ID)
	return nil
}

type stubPetDirectory struct {
	err error
}

func (d stubPetDirectory) VerifyOwnership(context.Context, int64, []int64) error {
	return d.err
}

func newTestService(t *testing.T, opts ...Option) (*Service, *appointmentsmemory.Repository) {
	t.Helper()
	repo := appointmentsmemory.NewRepository()
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewService(repo, opts...), repo
}

func createPending(t *testing.T, svc *Service, candidates ...timeslot.Slot) *domain.Appointment {
	t.Helper()
	if len(candidates) == 0 {
		candidates = []timeslot.Slot{slotAt(9, 0), slotAt(10, 0)}
	}
	created, err := svc.Create(context.Background(), types.CreateAppointmentInput{
		VetID:          7,
		OwnerID:        42,
		PetIDs:         []int64{1, 2},
		CandidateSlots: candidates,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, created.Status)
	return created
}

func TestCreate_ValidationFailuresMapToInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), types.CreateAppointmentInput{
		VetID:          7,
		OwnerID:        42,
		CandidateSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoPets)

	_, err = svc.Create(context.Background(), types.CreateAppointmentInput{
		VetID:   7,
		OwnerID: 42,
		PetIDs:  []int64{1},
		CandidateSlots: []timeslot.Slot{
			slotAt(9, 0), slotAt(10, 0), slotAt(11, 0), slotAt(12, 0),
		},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrTooManyCandidateSlots)
}

func TestCreate_ChecksPetOwnership(t *testing.T) {
	notOwned := errors.New("pet 2 does not belong to owner")
	svc, _ := newTestService(t, WithPetDirectory(stubPetDirectory{err: notOwned}))

	_, err := svc.Create(context.Background(), types.CreateAppointmentInput{
		VetID:          7,
		OwnerID:        42,
		PetIDs:         []int64{1, 2},
		CandidateSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.ErrorIs(t, err, notOwned)
}

func TestConfirm_SchedulesCompletionAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	scheduler := &recordingScheduler{}
	svc, _ := newTestService(t, WithNotifier(notifier), WithCompletionScheduler(scheduler))

	created := createPending(t, svc)

	confirmed, err := svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          created.ID,
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(10, 0)},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, confirmed.Status)
	require.True(t, confirmed.Confirmation.Slot.Equal(slotAt(10, 0)))

	require.Equal(t, []uuid.UUID{created.ID}, scheduler.scheduled)
	require.Equal(t, []domain.Status{domain.StatusConfirmed}, notifier.statuses)
}

func TestConfirm_SchedulerFailureDoesNotUndoConfirmation(t *testing.T) {
	scheduler := &recordingScheduler{err: errors.New("temporal unreachable")}
	svc, _ := newTestService(t, WithCompletionScheduler(scheduler))

	created := createPending(t, svc)

	confirmed, err := svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          created.ID,
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, confirmed.Status)

	reloaded, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, reloaded.Status)
}

func TestConfirm_DomainFailuresSurface(t *testing.T) {
	svc, _ := newTestService(t)
	created := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          created.ID,
		By:          domain.ActorPetOwner,
		ChosenSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.ErrorIs(t, err, domain.ErrActorNotAllowed)

	_, err = svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          created.ID,
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(15, 0)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidSelection)

	// The failed attempts left the appointment pending.
	reloaded, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, reloaded.Status)
}

func TestReject_Flow(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, WithNotifier(notifier))
	created := createPending(t, svc)

	_, err := svc.Reject(context.Background(), types.RejectAppointmentInput{
		ID: created.ID,
		By: domain.ActorVet,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrReasonRequired)
	require.Empty(t, notifier.statuses)

	rejected, err := svc.Reject(context.Background(), types.RejectAppointmentInput{
		ID:     created.ID,
		By:     domain.ActorVet,
		Reason: "on leave that day",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Status)
	require.Equal(t, []domain.Status{domain.StatusRejected}, notifier.statuses)
}

func TestCancel_ConfirmedByVetWithoutReason(t *testing.T) {
	svc, _ := newTestService(t)
	created := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          created.ID,
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), types.CancelAppointmentInput{
		ID: created.ID,
		By: domain.ActorVet,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, domain.ActorVet, cancelled.Cancellation.By)
}

func TestTransitions_UnknownAppointment(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          uuid.New(),
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListByVetAndOwner(t *testing.T) {
	svc, _ := newTestService(t)
	createPending(t, svc)

	second, err := svc.Create(context.Background(), types.CreateAppointmentInput{
		VetID:          8,
		OwnerID:        42,
		PetIDs:         []int64{3},
		CandidateSlots: []timeslot.Slot{slotAt(11, 0)},
	})
	require.NoError(t, err)

	byVet, err := svc.ListByVet(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, byVet, 1)
	require.Equal(t, second.ID, byVet[0].ID)

	byOwner, err := svc.ListByOwner(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
}

func TestCompleteElapsed_SweepsOnlyEndedConfirmed(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(t, WithNotifier(notifier))

	ended := createPending(t, svc, slotAt(9, 0))
	_, err := svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          ended.ID,
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(9, 0)},
	})
	require.NoError(t, err)

	upcoming := createPending(t, svc, slotAt(16, 0))
	_, err = svc.Confirm(context.Background(), types.ConfirmAppointmentInput{
		ID:          upcoming.ID,
		By:          domain.ActorVet,
		ChosenSlots: []timeslot.Slot{slotAt(16, 0)},
	})
	require.NoError(t, err)

	// A pending appointment with an elapsed candidate is never swept.
	createPending(t, svc, slotAt(9, 30))

	// Sweep at a point after the first slot ended but before the second.
	sweep := NewService(svc.repo, WithClock(func() time.Time {
		return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	}), WithNotifier(notifier))

	completed, err := sweep.CompleteElapsed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, completed)

	swept, err := svc.GetByID(context.Background(), ended.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, swept.Status)

	untouched, err := svc.GetByID(context.Background(), upcoming.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, untouched.Status)
}
