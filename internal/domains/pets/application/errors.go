package application

import (
	"errors"
	"fmt"

	"github.com/vetlink/vetlink-api/internal/domains/pets/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrNotOwned signals a referenced pet does not belong to the owner.
	ErrNotOwned = errors.New("pet does not belong to the owner")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySpecies) ||
		errors.Is(err, domain.ErrNoOwner) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
