package application

import (
	"errors"
	"fmt"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
)

// ErrInvalidInput signals the request violated a scheduling invariant.
var ErrInvalidInput = errors.New("invalid schedule input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidWindow) ||
		errors.Is(err, domain.ErrInvalidDay) ||
		errors.Is(err, domain.ErrInvalidTime) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
