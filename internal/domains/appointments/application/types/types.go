package types

import (
	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// CreateAppointmentInput carries a pet owner's appointment request: the
// target vet, the pets involved and one to three proposed time slots.
type CreateAppointmentInput struct {
	VetID          int64
	OwnerID        int64
	PetIDs         []int64
	CandidateSlots []timeslot.Slot
}

// ConfirmAppointmentInput carries the vet's acceptance. ChosenSlots holds the
// slots still toggled on in the vet's picker; exactly one must remain.
type ConfirmAppointmentInput struct {
	ID          uuid.UUID
	By          domain.Actor
	ChosenSlots []timeslot.Slot
}

type RejectAppointmentInput struct {
	ID     uuid.UUID
	By     domain.Actor
	Reason string
}

type CancelAppointmentInput struct {
	ID     uuid.UUID
	By     domain.Actor
	Reason string
}
