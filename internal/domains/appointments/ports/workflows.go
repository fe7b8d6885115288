package ports

import (
	"context"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
)

// CompletionScheduler arranges for a confirmed appointment to be completed
// once its accepted slot has elapsed (durable workflow or sweep).
type CompletionScheduler interface {
	ScheduleCompletion(ctx context.Context, appointment *domain.Appointment) error
}
