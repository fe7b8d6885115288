package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appointmentsmemory "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/memory"
	appointmentspostgres "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/persistence/postgres"
	appointmentsapp "github.com/vetlink/vetlink-api/internal/domains/appointments/application"
	appointmentports "github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
	appointmentactivities "github.com/vetlink/vetlink-api/internal/durable/temporal/activities/appointments"
	appointmentworkflows "github.com/vetlink/vetlink-api/internal/durable/temporal/workflows/appointments"
	platformobservability "github.com/vetlink/vetlink-api/internal/platform/observability"
	platformpostgres "github.com/vetlink/vetlink-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "vetlink-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	appointmentRepo, cleanupRepo := buildAppointmentRepository(ctx, logger)
	defer cleanupRepo()
	appointmentService := appointmentsapp.NewService(appointmentRepo)
	activities := appointmentactivities.NewActivities(appointmentService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, appointmentworkflows.CompletionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(appointmentworkflows.CompletionWorkflow, workflow.RegisterOptions{Name: appointmentworkflows.CompletionWorkflowName})
	w.RegisterActivityWithOptions(activities.CompleteAppointment, activity.RegisterOptions{Name: appointmentactivities.CompleteAppointmentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", appointmentworkflows.CompletionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildAppointmentRepository(ctx context.Context, logger *slog.Logger) (appointmentports.Repository, func()) {
	dsn := os.Getenv("POSTGRES_DSN")
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory appointment repository")
		return appointmentsmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres (falling back to memory)", slog.String("error", err.Error()))
		return appointmentsmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection (falling back to memory)", slog.String("error", err.Error()))
		return appointmentsmemory.NewRepository(), func() {}
	}
	logger.Info("worker appointment repository configured with postgres")
	return appointmentspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
