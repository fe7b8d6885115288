package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
)

// Service exposes the appointment negotiation use cases to adapters.
type Service interface {
	Create(ctx context.Context, input types.CreateAppointmentInput) (*domain.Appointment, error)
	Confirm(ctx context.Context, input types.ConfirmAppointmentInput) (*domain.Appointment, error)
	Reject(ctx context.Context, input types.RejectAppointmentInput) (*domain.Appointment, error)
	Cancel(ctx context.Context, input types.CancelAppointmentInput) (*domain.Appointment, error)
	Complete(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByVet(ctx context.Context, vetID int64) ([]*domain.Appointment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error)
	// CompleteElapsed completes every confirmed appointment whose slot has
	// ended, returning how many were transitioned.
	CompleteElapsed(ctx context.Context) (int, error)
}
