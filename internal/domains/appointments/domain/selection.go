package domain

import (
	"errors"
	"sort"

	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// MaxCandidateSlots caps how many candidate slots a pet owner may propose.
const MaxCandidateSlots = 3

var (
	ErrInvalidSelection    = errors.New("chosen slot is not among the proposed candidates")
	ErrNoSlotChosen        = errors.New("exactly one slot must be chosen")
	ErrMultipleSlotsChosen = errors.New("only one slot may be chosen")
)

// Selection accumulates the pet owner's candidate slots during the proposal
// phase. It always holds between 0 and MaxCandidateSlots slots, ascending by
// start time, without duplicates.
type Selection struct {
	slots []timeslot.Slot
}

// NewSelection builds a selection by toggling each slot in turn, so the
// cardinality and ordering guarantees hold regardless of the input.
func NewSelection(slots ...timeslot.Slot) Selection {
	var s Selection
	for _, slot := range slots {
		s = s.Toggle(slot)
	}
	return s
}

// Toggle removes the slot when already selected (matched by start+end value
// equality) and adds it otherwise. Adding past capacity is a silent no-op.
func (s Selection) Toggle(slot timeslot.Slot) Selection {
	for i, existing := range s.slots {
		if existing.Equal(slot) {
			next := make([]timeslot.Slot, 0, len(s.slots)-1)
			next = append(next, s.slots[:i]...)
			next = append(next, s.slots[i+1:]...)
			return Selection{slots: next}
		}
	}
	if len(s.slots) >= MaxCandidateSlots {
		return s
	}
	next := append(append([]timeslot.Slot{}, s.slots...), slot)
	sort.Slice(next, func(i, j int) bool { return next[i].Before(next[j]) })
	return Selection{slots: next}
}

// Slots returns the selected slots in ascending start order.
func (s Selection) Slots() []timeslot.Slot {
	return append([]timeslot.Slot{}, s.slots...)
}

// Len returns the number of selected slots.
func (s Selection) Len() int { return len(s.slots) }

// Contains reports whether an equal slot is already selected.
func (s Selection) Contains(slot timeslot.Slot) bool {
	return timeslot.Contains(s.slots, slot)
}

// SelectConfirmation validates the veterinarian's choice against the pet
// owner's candidates. Exactly one slot must be supplied and it must be
// structurally identical to a candidate; the returned slot is the stored
// candidate itself, never a synthesized value.
func SelectConfirmation(candidates []timeslot.Slot, chosen ...timeslot.Slot) (timeslot.Slot, error) {
	switch {
	case len(chosen) == 0:
		return timeslot.Slot{}, ErrNoSlotChosen
	case len(chosen) > 1:
		return timeslot.Slot{}, ErrMultipleSlotsChosen
	}
	for _, candidate := range candidates {
		if candidate.Equal(chosen[0]) {
			return candidate, nil
		}
	}
	return timeslot.Slot{}, ErrInvalidSelection
}
