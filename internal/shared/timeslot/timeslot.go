// Package timeslot defines the time-slot value type shared by the scheduling
// and appointments bounded contexts. Slots are compared by value (start and end
// instants), never by position in a list.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// Length is the fixed duration of a bookable consultation slot.
const Length = 15 * time.Minute

var ErrInvalidSlot = errors.New("slot end must be after slot start")

// Slot is an immutable [Start, End) time window.
type Slot struct {
	Start time.Time
	End   time.Time
}

// New builds a slot, rejecting empty or inverted windows.
func New(start, end time.Time) (Slot, error) {
	if !end.After(start) {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{Start: start, End: end}, nil
}

// Equal reports structural identity: both instants match.
func (s Slot) Equal(other Slot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}

// Before orders slots by start instant.
func (s Slot) Before(other Slot) bool {
	return s.Start.Before(other.Start)
}

// Duration returns the slot length.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IsZero reports whether the slot is the zero value.
func (s Slot) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

func (s Slot) String() string {
	return fmt.Sprintf("%s/%s", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
}

// Contains reports whether the given slice holds a slot structurally equal to want.
func Contains(slots []Slot, want Slot) bool {
	for _, s := range slots {
		if s.Equal(want) {
			return true
		}
	}
	return false
}
