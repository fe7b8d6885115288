package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// Actor is the role attributed to a state-transition action.
type Actor string

const (
	ActorPetOwner Actor = "pet_owner"
	ActorVet      Actor = "vet"
)

// ParseActor validates a transition actor role.
func ParseActor(value string) (Actor, error) {
	switch Actor(value) {
	case ActorPetOwner, ActorVet:
		return Actor(value), nil
	default:
		return "", ErrUnknownActor
	}
}

// Status enumerates the appointment lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

var (
	ErrNoPets                 = errors.New("at least one pet is required")
	ErrNoCandidateSlots       = errors.New("at least one candidate slot is required")
	ErrTooManyCandidateSlots  = errors.New("at most three candidate slots are allowed")
	ErrDuplicateCandidateSlot = errors.New("candidate slots must have distinct start times")
	ErrReasonRequired         = errors.New("a reason is required")
	ErrInvalidTransition      = errors.New("transition not permitted from the current status")
	ErrActorNotAllowed        = errors.New("action not permitted for the acting role")
	ErrUnknownActor           = errors.New("unknown actor role")
)

// Confirmation carries the data that exists only once a veterinarian has
// accepted one of the proposed slots.
type Confirmation struct {
	Slot timeslot.Slot
	At   time.Time
}

// Rejection carries the data that exists only on a rejected appointment.
type Rejection struct {
	Reason string
	At     time.Time
}

// Cancellation carries the data that exists only on a cancelled appointment.
type Cancellation struct {
	Reason string
	By     Actor
	At     time.Time
}

// Appointment is the negotiation aggregate between a pet owner and a
// veterinarian. Status-specific data lives in the variant structs below,
// populated exclusively by the corresponding transition.
type Appointment struct {
	ID      uuid.UUID
	VetID   int64
	OwnerID int64
	PetIDs  []int64

	// RequestedSlots are the owner's candidate slots, 1 to 3 entries,
	// ascending by start time. Immutable after creation.
	RequestedSlots []timeslot.Slot

	Status       Status
	Confirmation *Confirmation
	Rejection    *Rejection
	Cancellation *Cancellation
	CompletedAt  time.Time

	CreatedAt time.Time
}

// NewAppointment validates the booking request invariants and builds a
// pending appointment.
func NewAppointment(id uuid.UUID, vetID, ownerID int64, petIDs []int64, candidates []timeslot.Slot, now time.Time) (*Appointment, error) {
	if len(petIDs) == 0 {
		return nil, ErrNoPets
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidateSlots
	}
	if len(candidates) > MaxCandidateSlots {
		return nil, ErrTooManyCandidateSlots
	}
	slots := append([]timeslot.Slot{}, candidates...)
	for i, slot := range slots {
		validated, err := timeslot.New(slot.Start, slot.End)
		if err != nil {
			return nil, err
		}
		slots[i] = validated
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Equal(slots[i-1].Start) {
			return nil, ErrDuplicateCandidateSlot
		}
	}
	return &Appointment{
		ID:             id,
		VetID:          vetID,
		OwnerID:        ownerID,
		PetIDs:         append([]int64{}, petIDs...),
		RequestedSlots: slots,
		Status:         StatusPending,
		CreatedAt:      now,
	}, nil
}

// Confirm accepts exactly one of the proposed candidate slots. Only the
// veterinarian may confirm, and only while the appointment is pending. On any
// failure the appointment is left unchanged.
func (a *Appointment) Confirm(by Actor, chosen []timeslot.Slot, now time.Time) error {
	if by != ActorVet {
		return ErrActorNotAllowed
	}
	if a.Status != StatusPending {
		return ErrInvalidTransition
	}
	slot, err := SelectConfirmation(a.RequestedSlots, chosen...)
	if err != nil {
		return err
	}
	a.Confirmation = &Confirmation{Slot: slot, At: now}
	a.Status = StatusConfirmed
	return nil
}

// Reject declines the booking request with a mandatory reason. Only the
// veterinarian may reject, and only while the appointment is pending.
func (a *Appointment) Reject(by Actor, reason string, now time.Time) error {
	if by != ActorVet {
		return ErrActorNotAllowed
	}
	if a.Status != StatusPending {
		return ErrInvalidTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	a.Rejection = &Rejection{Reason: reason, At: now}
	a.Status = StatusRejected
	return nil
}

// Cancel withdraws a pending or confirmed appointment. A pending cancel
// always needs a reason; a confirmed cancel needs one only from the pet owner
// (the veterinarian may omit it).
func (a *Appointment) Cancel(by Actor, reason string, now time.Time) error {
	if _, err := ParseActor(string(by)); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	switch a.Status {
	case StatusPending:
		if reason == "" {
			return ErrReasonRequired
		}
	case StatusConfirmed:
		if by == ActorPetOwner && reason == "" {
			return ErrReasonRequired
		}
	default:
		return ErrInvalidTransition
	}
	a.Cancellation = &Cancellation{Reason: reason, By: by, At: now}
	a.Status = StatusCancelled
	return nil
}

// Complete marks a confirmed appointment as held. Triggered by the system
// once the confirmed slot has elapsed, or by the veterinarian.
func (a *Appointment) Complete(now time.Time) error {
	if a.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	a.CompletedAt = now
	a.Status = StatusCompleted
	return nil
}

// ConfirmedSlot returns the accepted slot when the appointment is confirmed
// or completed.
func (a *Appointment) ConfirmedSlot() (timeslot.Slot, bool) {
	if a.Confirmation == nil {
		return timeslot.Slot{}, false
	}
	return a.Confirmation.Slot, true
}

// Clone returns a deep copy so adapters can hand out snapshots safely.
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	clone := *a
	clone.PetIDs = append([]int64{}, a.PetIDs...)
	clone.RequestedSlots = append([]timeslot.Slot{}, a.RequestedSlots...)
	if a.Confirmation != nil {
		confirmation := *a.Confirmation
		clone.Confirmation = &confirmation
	}
	if a.Rejection != nil {
		rejection := *a.Rejection
		clone.Rejection = &rejection
	}
	if a.Cancellation != nil {
		cancellation := *a.Cancellation
		clone.Cancellation = &cancellation
	}
	return &clone
}
