package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
)

var (
	ErrNotFound = errors.New("appointment not found")
	// ErrConcurrencyConflict signals the stored status no longer matched the
	// expected pre-transition status at write time. Callers should re-fetch
	// and decide whether to retry.
	ErrConcurrencyConflict = errors.New("appointment status changed concurrently")
)

// Repository persists appointment aggregates. Update is a compare-and-swap on
// the stored status so concurrent conflicting actions are serialized.
type Repository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	// Update persists the aggregate only while the stored status still equals
	// expected; otherwise it returns ErrConcurrencyConflict.
	Update(ctx context.Context, appointment *domain.Appointment, expected domain.Status) (*domain.Appointment, error)
	ListByVet(ctx context.Context, vetID int64) ([]*domain.Appointment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error)
	// ListConfirmedEndedBefore returns confirmed appointments whose accepted
	// slot ended before the cutoff, for completion sweeps.
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Appointment, error)
}
