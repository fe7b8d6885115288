package appointments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	appointmentports "github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
)

// CompleteAppointmentActivityName marks a confirmed appointment as held.
const CompleteAppointmentActivityName = "appointments.activities.Complete"

// Activities groups activities operating on the appointments bounded context.
type Activities struct {
	service appointmentports.Service
}

// NewActivities wires the appointments service into the Temporal activities bundle.
func NewActivities(service appointmentports.Service) *Activities {
	return &Activities{service: service}
}

// CompleteAppointment transitions a confirmed appointment to completed. An
// appointment that was cancelled or already completed while the workflow
// slept is not an error; the workflow simply has nothing left to do.
func (a *Activities) CompleteAppointment(ctx context.Context, id uuid.UUID) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("appointment completion activity not initialized", "appointmentId", id.String())
		return errors.New("appointment completion activity not initialized")
	}
	logger.Info("CompleteAppointment activity started", "appointmentId", id.String())
	_, err := a.service.Complete(ctx, id)
	switch {
	case err == nil:
		logger.Info("CompleteAppointment activity completed", "appointmentId", id.String())
		return nil
	case errors.Is(err, domain.ErrInvalidTransition):
		logger.Info("appointment no longer confirmed; skipping completion", "appointmentId", id.String())
		return nil
	case errors.Is(err, appointmentports.ErrNotFound):
		logger.Info("appointment not found; skipping completion", "appointmentId", id.String())
		return nil
	default:
		logger.Error("CompleteAppointment activity failed", "appointmentId", id.String(), "error", err)
		return err
	}
}
