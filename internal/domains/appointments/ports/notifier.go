package ports

import (
	"context"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
)

// Notifier is told about every successful transition so an external
// dispatcher can fan the change out to both actors. Dispatch is
// fire-and-forget; failures never roll back a transition.
type Notifier interface {
	AppointmentChanged(ctx context.Context, appointment *domain.Appointment) error
}

// NoopNotifier is a safe default when no dispatcher is configured.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) AppointmentChanged(context.Context, *domain.Appointment) error { return nil }
