package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
)

const tracerName = "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/observability/service"

// Service decorates an appointments application port with tracing, logging,
// and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create registers a new booking request with instrumentation.
func (s *Service) Create(ctx context.Context, input types.CreateAppointmentInput) (*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.Create",
		attribute.Int64("appointment.vet_id", input.VetID),
		attribute.Int64("appointment.owner_id", input.OwnerID),
		attribute.Int("appointment.candidate_count", len(input.CandidateSlots)),
	)
	defer span.End()

	s.logInfo(ctx, "creating appointment", slog.Int64("vet.id", input.VetID), slog.Int64("owner.id", input.OwnerID))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create appointment", slog.Int64("vet.id", input.VetID))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "appointment created", slog.String("appointment.id", result.ID.String()))
	return result, nil
}

// Confirm accepts one of the proposed slots.
func (s *Service) Confirm(ctx context.Context, input types.ConfirmAppointmentInput) (*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.Confirm", attribute.String("appointment.id", input.ID.String()))
	defer span.End()

	s.logInfo(ctx, "confirming appointment", slog.String("appointment.id", input.ID.String()))
	result, err := s.inner.Confirm(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm appointment", slog.String("appointment.id", input.ID.String()))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "appointment confirmed", slog.String("appointment.id", result.ID.String()))
	return result, nil
}

// Reject declines a booking request.
func (s *Service) Reject(ctx context.Context, input types.RejectAppointmentInput) (*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.Reject", attribute.String("appointment.id", input.ID.String()))
	defer span.End()

	s.logInfo(ctx, "rejecting appointment", slog.String("appointment.id", input.ID.String()))
	result, err := s.inner.Reject(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to reject appointment", slog.String("appointment.id", input.ID.String()))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "appointment rejected", slog.String("appointment.id", result.ID.String()))
	return result, nil
}

// Cancel withdraws a pending or confirmed appointment.
func (s *Service) Cancel(ctx context.Context, input types.CancelAppointmentInput) (*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.Cancel",
		attribute.String("appointment.id", input.ID.String()),
		attribute.String("appointment.cancelled_by", string(input.By)),
	)
	defer span.End()

	s.logInfo(ctx, "cancelling appointment", slog.String("appointment.id", input.ID.String()), slog.String("by", string(input.By)))
	result, err := s.inner.Cancel(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel appointment", slog.String("appointment.id", input.ID.String()))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "appointment cancelled", slog.String("appointment.id", result.ID.String()))
	return result, nil
}

// Complete marks a confirmed appointment as held.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.Complete", attribute.String("appointment.id", id.String()))
	defer span.End()

	s.logInfo(ctx, "completing appointment", slog.String("appointment.id", id.String()))
	result, err := s.inner.Complete(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to complete appointment", slog.String("appointment.id", id.String()))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "appointment completed", slog.String("appointment.id", result.ID.String()))
	return result, nil
}

// GetByID loads a single appointment.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("appointment.id", id.String()))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load appointment", slog.String("appointment.id", id.String()))
	}
	return result, nil
}

// ListByVet lists the veterinarian's appointments.
func (s *Service) ListByVet(ctx context.Context, vetID int64) ([]*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByVet", attribute.Int64("appointment.vet_id", vetID))
	defer span.End()

	result, err := s.inner.ListByVet(ctx, vetID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list appointments by vet", slog.Int64("vet.id", vetID))
	}
	span.SetAttributes(attribute.Int("appointment.result.count", len(result)))
	return result, nil
}

// ListByOwner lists the pet owner's appointments.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByOwner", attribute.Int64("appointment.owner_id", ownerID))
	defer span.End()

	result, err := s.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list appointments by owner", slog.Int64("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int("appointment.result.count", len(result)))
	return result, nil
}

// CompleteElapsed sweeps confirmed appointments whose slot has ended.
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "Service.CompleteElapsed")
	defer span.End()

	s.logInfo(ctx, "sweeping elapsed appointments")
	count, err := s.inner.CompleteElapsed(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to sweep elapsed appointments")
	}
	span.SetAttributes(attribute.Int("appointment.swept.count", count))
	s.metrics.recordSwept(ctx, count)
	s.logInfo(ctx, "swept elapsed appointments", slog.Int("count", count))
	return count, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	transitions metric.Int64Counter
	swept       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	transitions, _ := m.Int64Counter("appointments.service.transitions", metric.WithDescription("Number of appointment state transitions"))
	swept, _ := m.Int64Counter("appointments.service.completed_by_sweep", metric.WithDescription("Number of appointments completed by the elapsed sweep"))
	return serviceMetrics{
		transitions: transitions,
		swept:       swept,
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.transitions, 1, attribute.String("appointment.status", string(status)))
}

func (m serviceMetrics) recordSwept(ctx context.Context, count int) {
	addCounter(ctx, m.swept, int64(count))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
