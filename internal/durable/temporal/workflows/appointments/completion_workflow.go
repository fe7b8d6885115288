package appointments

import (
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appointmentactivities "github.com/vetlink/vetlink-api/internal/durable/temporal/activities/appointments"
)

const (
	// CompletionWorkflowName is the public identifier for registering the workflow.
	CompletionWorkflowName = "appointments.workflows.Completion"
	// CompletionTaskQueue is the queue consumed by the worker processing appointment workflows.
	CompletionTaskQueue = "APPOINTMENT_COMPLETION"
)

// CompletionWorkflowInput captures what the workflow needs to complete a
// confirmed appointment once its accepted slot has elapsed.
type CompletionWorkflowInput struct {
	AppointmentID uuid.UUID
	SlotEnd       time.Time
	TraceID       string
}

// CompletionWorkflow sleeps until the accepted slot has ended and then marks
// the appointment completed. The activity tolerates appointments that were
// cancelled in the meantime.
func CompletionWorkflow(ctx workflow.Context, input CompletionWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("CompletionWorkflow started", withTraceID(input.TraceID, "appointmentId", input.AppointmentID.String())...)

	if delay := input.SlotEnd.Sub(workflow.Now(ctx)); delay > 0 {
		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	err := workflow.ExecuteActivity(ctx, appointmentactivities.CompleteAppointmentActivityName, input.AppointmentID).Get(ctx, nil)
	if err != nil {
		logger.Error("CompletionWorkflow failed", withTraceID(input.TraceID, "appointmentId", input.AppointmentID.String(), "error", err)...)
		return err
	}
	logger.Info("CompletionWorkflow completed", withTraceID(input.TraceID, "appointmentId", input.AppointmentID.String())...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
