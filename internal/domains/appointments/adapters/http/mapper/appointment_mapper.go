package mapper

import (
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// SlotPayload is the wire form of a time slot.
type SlotPayload struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CreateAppointmentRequest is the booking request body sent by a pet owner.
type CreateAppointmentRequest struct {
	VetID          int64         `json:"vetId"`
	OwnerID        int64         `json:"ownerId"`
	PetIDs         []int64       `json:"petIds"`
	CandidateSlots []SlotPayload `json:"candidateSlots"`
}

// ConfirmRequest carries the slots still toggled on in the vet's picker.
type ConfirmRequest struct {
	By          string        `json:"by,omitempty"`
	ChosenSlots []SlotPayload `json:"chosenSlots"`
}

// ReasonRequest carries the optional-or-required reason for reject/cancel.
type ReasonRequest struct {
	By     string `json:"by,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ConfirmationView is the wire form of an accepted slot.
type ConfirmationView struct {
	Slot SlotPayload `json:"slot"`
	At   time.Time   `json:"at"`
}

// RejectionView is the wire form of a rejection outcome.
type RejectionView struct {
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// CancellationView is the wire form of a cancellation outcome.
type CancellationView struct {
	Reason string    `json:"reason,omitempty"`
	By     string    `json:"by"`
	At     time.Time `json:"at"`
}

// AppointmentView is the wire form of the appointment aggregate. Only the
// variant matching the status is present.
type AppointmentView struct {
	ID             string            `json:"id"`
	VetID          int64             `json:"vetId"`
	OwnerID        int64             `json:"ownerId"`
	PetIDs         []int64           `json:"petIds"`
	RequestedSlots []SlotPayload     `json:"requestedSlots"`
	Status         string            `json:"status"`
	Confirmation   *ConfirmationView `json:"confirmation,omitempty"`
	Rejection      *RejectionView    `json:"rejection,omitempty"`
	Cancellation   *CancellationView `json:"cancellation,omitempty"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ToSlots converts wire slots to domain slots without validation; the domain
// re-validates on use.
func ToSlots(payloads []SlotPayload) []timeslot.Slot {
	slots := make([]timeslot.Slot, 0, len(payloads))
	for _, payload := range payloads {
		slots = append(slots, timeslot.Slot{Start: payload.Start, End: payload.End})
	}
	return slots
}

// FromSlots converts domain slots to their wire form.
func FromSlots(slots []timeslot.Slot) []SlotPayload {
	payloads := make([]SlotPayload, 0, len(slots))
	for _, slot := range slots {
		payloads = append(payloads, SlotPayload{Start: slot.Start, End: slot.End})
	}
	return payloads
}

// FromAppointment converts the aggregate to its wire form.
func FromAppointment(appointment *domain.Appointment) AppointmentView {
	view := AppointmentView{
		ID:             appointment.ID.String(),
		VetID:          appointment.VetID,
		OwnerID:        appointment.OwnerID,
		PetIDs:         append([]int64{}, appointment.PetIDs...),
		RequestedSlots: FromSlots(appointment.RequestedSlots),
		Status:         string(appointment.Status),
		CreatedAt:      appointment.CreatedAt,
	}
	if c := appointment.Confirmation; c != nil {
		view.Confirmation = &ConfirmationView{
			Slot: SlotPayload{Start: c.Slot.Start, End: c.Slot.End},
			At:   c.At,
		}
	}
	if r := appointment.Rejection; r != nil {
		view.Rejection = &RejectionView{Reason: r.Reason, At: r.At}
	}
	if c := appointment.Cancellation; c != nil {
		view.Cancellation = &CancellationView{Reason: c.Reason, By: string(c.By), At: c.At}
	}
	if !appointment.CompletedAt.IsZero() {
		at := appointment.CompletedAt
		view.CompletedAt = &at
	}
	return view
}

// FromAppointments converts a list of aggregates to wire form.
func FromAppointments(appointments []*domain.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		views = append(views, FromAppointment(appointment))
	}
	return views
}
