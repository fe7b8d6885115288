package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
	"github.com/vetlink/vetlink-api/internal/domains/scheduling/ports"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

const tracerName = "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/observability/service"

// Service decorates a scheduling application port with tracing, logging, and metrics.
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

// SetSchedule replaces the veterinarian's weekly availability.
func (s *Service) SetSchedule(ctx context.Context, vetID int64, entries []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error) {
	ctx, span := s.startSpan(ctx, "Service.SetSchedule",
		attribute.Int64("vet.id", vetID),
		attribute.Int("schedule.window_count", len(entries)),
	)
	defer span.End()

	s.logInfo(ctx, "replacing schedule", slog.Int64("vet.id", vetID), slog.Int("windows", len(entries)))
	result, err := s.inner.SetSchedule(ctx, vetID, entries)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to replace schedule", slog.Int64("vet.id", vetID))
	}
	s.metrics.recordScheduleReplaced(ctx)
	s.logInfo(ctx, "schedule replaced", slog.Int64("vet.id", vetID), slog.Int("windows", len(result)))
	return result, nil
}

// GetSchedule loads the veterinarian's weekly availability.
func (s *Service) GetSchedule(ctx context.Context, vetID int64) ([]domain.WeeklyAvailability, error) {
	ctx, span := s.startSpan(ctx, "Service.GetSchedule", attribute.Int64("vet.id", vetID))
	defer span.End()

	result, err := s.inner.GetSchedule(ctx, vetID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load schedule", slog.Int64("vet.id", vetID))
	}
	span.SetAttributes(attribute.Int("schedule.window_count", len(result)))
	return result, nil
}

// BookableDates expands the schedule over a booking window.
func (s *Service) BookableDates(ctx context.Context, vetID int64, windowStart time.Time, days int) ([]domain.DayAvailability, error) {
	ctx, span := s.startSpan(ctx, "Service.BookableDates",
		attribute.Int64("vet.id", vetID),
		attribute.Int("window.days", days),
	)
	defer span.End()

	result, err := s.inner.BookableDates(ctx, vetID, windowStart, days)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to expand booking window", slog.Int64("vet.id", vetID))
	}
	return result, nil
}

// SlotsForDate lists the bookable slots on a date.
func (s *Service) SlotsForDate(ctx context.Context, vetID int64, date time.Time) ([]timeslot.Slot, error) {
	ctx, span := s.startSpan(ctx, "Service.SlotsForDate",
		attribute.Int64("vet.id", vetID),
		attribute.String("slots.date", date.Format("2006-01-02")),
	)
	defer span.End()

	result, err := s.inner.SlotsForDate(ctx, vetID, date)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list slots", slog.Int64("vet.id", vetID))
	}
	span.SetAttributes(attribute.Int("slots.count", len(result)))
	return result, nil
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
	schedulesReplaced metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	schedulesReplaced, _ := m.Int64Counter("scheduling.service.schedules_replaced", metric.WithDescription("Number of weekly schedules replaced"))
	return serviceMetrics{schedulesReplaced: schedulesReplaced}
}

func (m serviceMetrics) recordScheduleReplaced(ctx context.Context) {
	addCounter(ctx, m.schedulesReplaced, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
