package application

import (
	"errors"
	"fmt"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// ErrInvalidInput wraps domain validation failures so transports can map them
// to a 4xx without inspecting individual sentinels.
var ErrInvalidInput = errors.New("invalid input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNoPets),
		errors.Is(err, domain.ErrNoCandidateSlots),
		errors.Is(err, domain.ErrTooManyCandidateSlots),
		errors.Is(err, domain.ErrDuplicateCandidateSlot),
		errors.Is(err, domain.ErrReasonRequired),
		errors.Is(err, domain.ErrUnknownActor),
		errors.Is(err, timeslot.ErrInvalidSlot):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
