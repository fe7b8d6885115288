package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
	appointmentworkflows "github.com/vetlink/vetlink-api/internal/durable/temporal/workflows/appointments"
)

var (
	_ ports.CompletionScheduler = (*TemporalCompletionScheduler)(nil)
	_ ports.CompletionScheduler = (*SweepCompletionScheduler)(nil)
)

// TemporalCompletionScheduler starts a durable workflow that completes the
// appointment once its accepted slot has elapsed.
type TemporalCompletionScheduler struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCompletionScheduler wires a Temporal client into the scheduler.
func NewTemporalCompletionScheduler(c client.Client) *TemporalCompletionScheduler {
	return &TemporalCompletionScheduler{client: c, taskQueue: appointmentworkflows.CompletionTaskQueue}
}

// ScheduleCompletion starts the completion workflow. The workflow ID is
// derived from the appointment, so re-confirming after a conflict cannot
// spawn a second workflow.
func (s *TemporalCompletionScheduler) ScheduleCompletion(ctx context.Context, appointment *domain.Appointment) error {
	if s == nil || s.client == nil {
		return errors.New("temporal completion scheduler not configured")
	}
	slot, ok := appointment.ConfirmedSlot()
	if !ok {
		return errors.New("appointment has no confirmed slot")
	}
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("appointment-completion-%s", appointment.ID),
		TaskQueue: s.taskQueue,
	}
	_, err := s.client.ExecuteWorkflow(
		ctx,
		options,
		appointmentworkflows.CompletionWorkflowName,
		appointmentworkflows.CompletionWorkflowInput{
			AppointmentID: appointment.ID,
			SlotEnd:       slot.End,
			TraceID:       workflowTraceID(ctx),
		},
	)
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		return nil
	}
	return err
}

// SweepCompletionScheduler is the fallback when no Temporal cluster is
// configured: it schedules nothing and leaves completion to the periodic
// CompleteElapsed sweep.
type SweepCompletionScheduler struct{}

func NewSweepCompletionScheduler() *SweepCompletionScheduler { return &SweepCompletionScheduler{} }

func (*SweepCompletionScheduler) ScheduleCompletion(context.Context, *domain.Appointment) error {
	return nil
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
