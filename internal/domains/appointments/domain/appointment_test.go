package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pendingAppointment(t *testing.T, candidates ...timeslot.Slot) *Appointment {
	t.Helper()
	if len(candidates) == 0 {
		candidates = []timeslot.Slot{slotAt(9, 0), slotAt(10, 0)}
	}
	appointment, err := NewAppointment(uuid.New(), 7, 42, []int64{1}, candidates, testNow)
	require.NoError(t, err)
	return appointment
}

func TestNewAppointment_Validation(t *testing.T) {
	id := uuid.New()

	_, err := NewAppointment(id, 7, 42, nil, []timeslot.Slot{slotAt(9, 0)}, testNow)
	require.ErrorIs(t, err, ErrNoPets)

	_, err = NewAppointment(id, 7, 42, []int64{1}, nil, testNow)
	require.ErrorIs(t, err, ErrNoCandidateSlots)

	_, err = NewAppointment(id, 7, 42, []int64{1},
		[]timeslot.Slot{slotAt(9, 0), slotAt(10, 0), slotAt(11, 0), slotAt(12, 0)}, testNow)
	require.ErrorIs(t, err, ErrTooManyCandidateSlots)

	_, err = NewAppointment(id, 7, 42, []int64{1},
		[]timeslot.Slot{slotAt(9, 0), slotAt(9, 0)}, testNow)
	require.ErrorIs(t, err, ErrDuplicateCandidateSlot)

	_, err = NewAppointment(id, 7, 42, []int64{1},
		[]timeslot.Slot{{Start: testNow, End: testNow}}, testNow)
	require.ErrorIs(t, err, timeslot.ErrInvalidSlot)
}

func TestNewAppointment_SortsCandidates(t *testing.T) {
	appointment := pendingAppointment(t, slotAt(14, 0), slotAt(9, 0), slotAt(11, 0))

	require.Equal(t, StatusPending, appointment.Status)
	require.Len(t, appointment.RequestedSlots, 3)
	for i := 1; i < len(appointment.RequestedSlots); i++ {
		require.True(t, appointment.RequestedSlots[i-1].Before(appointment.RequestedSlots[i]))
	}
}

func TestConfirm_HappyPath(t *testing.T) {
	appointment := pendingAppointment(t)

	err := appointment.Confirm(ActorVet, []timeslot.Slot{slotAt(10, 0)}, testNow)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, appointment.Status)
	require.NotNil(t, appointment.Confirmation)
	require.True(t, appointment.Confirmation.Slot.Equal(slotAt(10, 0)))
	require.Equal(t, testNow, appointment.Confirmation.At)

	slot, ok := appointment.ConfirmedSlot()
	require.True(t, ok)
	require.True(t, slot.Equal(slotAt(10, 0)))
}

func TestConfirm_OnlyVetMayConfirm(t *testing.T) {
	appointment := pendingAppointment(t)

	err := appointment.Confirm(ActorPetOwner, []timeslot.Slot{slotAt(9, 0)}, testNow)
	require.ErrorIs(t, err, ErrActorNotAllowed)
	require.Equal(t, StatusPending, appointment.Status)
	require.Nil(t, appointment.Confirmation)
}

func TestConfirm_InvalidChoiceLeavesAppointmentPending(t *testing.T) {
	appointment := pendingAppointment(t)

	err := appointment.Confirm(ActorVet, []timeslot.Slot{slotAt(15, 0)}, testNow)
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Equal(t, StatusPending, appointment.Status)

	err = appointment.Confirm(ActorVet, nil, testNow)
	require.ErrorIs(t, err, ErrNoSlotChosen)
	require.Equal(t, StatusPending, appointment.Status)
}

func TestReject_RequiresVetAndReason(t *testing.T) {
	appointment := pendingAppointment(t)

	err := appointment.Reject(ActorPetOwner, "no thanks", testNow)
	require.ErrorIs(t, err, ErrActorNotAllowed)

	err = appointment.Reject(ActorVet, "   ", testNow)
	require.ErrorIs(t, err, ErrReasonRequired)
	require.Equal(t, StatusPending, appointment.Status)

	err = appointment.Reject(ActorVet, "fully booked that week", testNow)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, appointment.Status)
	require.Equal(t, "fully booked that week", appointment.Rejection.Reason)
}

func TestCancel_PendingRequiresReasonFromEitherActor(t *testing.T) {
	for _, actor := range []Actor{ActorPetOwner, ActorVet} {
		appointment := pendingAppointment(t)

		err := appointment.Cancel(actor, "", testNow)
		require.ErrorIs(t, err, ErrReasonRequired, "actor %s", actor)
		require.Equal(t, StatusPending, appointment.Status)

		err = appointment.Cancel(actor, "scheduling conflict", testNow)
		require.NoError(t, err)
		require.Equal(t, StatusCancelled, appointment.Status)
		require.Equal(t, actor, appointment.Cancellation.By)
	}
}

func TestCancel_ConfirmedReasonOnlyBindsPetOwner(t *testing.T) {
	confirmed := func() *Appointment {
		appointment := pendingAppointment(t)
		require.NoError(t, appointment.Confirm(ActorVet, []timeslot.Slot{slotAt(9, 0)}, testNow))
		return appointment
	}

	byOwner := confirmed()
	err := byOwner.Cancel(ActorPetOwner, "", testNow)
	require.ErrorIs(t, err, ErrReasonRequired)
	require.Equal(t, StatusConfirmed, byOwner.Status)

	byVet := confirmed()
	err = byVet.Cancel(ActorVet, "", testNow)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, byVet.Status)
	require.Empty(t, byVet.Cancellation.Reason)
}

func TestCancel_UnknownActor(t *testing.T) {
	appointment := pendingAppointment(t)
	err := appointment.Cancel(Actor("receptionist"), "reason", testNow)
	require.ErrorIs(t, err, ErrUnknownActor)
}

func TestComplete_OnlyFromConfirmed(t *testing.T) {
	appointment := pendingAppointment(t)

	err := appointment.Complete(testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, appointment.Confirm(ActorVet, []timeslot.Slot{slotAt(9, 0)}, testNow))
	require.NoError(t, appointment.Complete(testNow.Add(time.Hour)))
	require.Equal(t, StatusCompleted, appointment.Status)
	require.Equal(t, testNow.Add(time.Hour), appointment.CompletedAt)
}

func TestTerminalStatusesRejectFurtherTransitions(t *testing.T) {
	appointment := pendingAppointment(t)
	require.NoError(t, appointment.Reject(ActorVet, "closed", testNow))

	require.ErrorIs(t, appointment.Confirm(ActorVet, []timeslot.Slot{slotAt(9, 0)}, testNow), ErrInvalidTransition)
	require.ErrorIs(t, appointment.Reject(ActorVet, "again", testNow), ErrInvalidTransition)
	require.ErrorIs(t, appointment.Cancel(ActorVet, "too late", testNow), ErrInvalidTransition)
	require.ErrorIs(t, appointment.Complete(testNow), ErrInvalidTransition)

	require.True(t, StatusRejected.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.True(t, StatusCompleted.Terminal())
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusConfirmed.Terminal())
}

func TestClone_IsDeep(t *testing.T) {
	appointment := pendingAppointment(t)
	require.NoError(t, appointment.Confirm(ActorVet, []timeslot.Slot{slotAt(9, 0)}, testNow))

	clone := appointment.Clone()
	clone.PetIDs[0] = 999
	clone.Confirmation.Slot = slotAt(23, 0)

	require.Equal(t, int64(1), appointment.PetIDs[0])
	require.True(t, appointment.Confirmation.Slot.Equal(slotAt(9, 0)))
}
