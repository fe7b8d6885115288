package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	vetlinkserver "github.com/vetlink/vetlink-api/server"

	accountsmemory "github.com/vetlink/vetlink-api/internal/domains/accounts/adapters/memory"
	accountspostgres "github.com/vetlink/vetlink-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsapp "github.com/vetlink/vetlink-api/internal/domains/accounts/application"
	accountports "github.com/vetlink/vetlink-api/internal/domains/accounts/ports"

	appointmentsmemory "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/memory"
	appointmentsobs "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/observability"
	appointmentspostgres "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/persistence/postgres"
	appointmentsworkflows "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/workflows"
	appointmentsapp "github.com/vetlink/vetlink-api/internal/domains/appointments/application"
	appointmentports "github.com/vetlink/vetlink-api/internal/domains/appointments/ports"

	petsmemory "github.com/vetlink/vetlink-api/internal/domains/pets/adapters/memory"
	petspostgres "github.com/vetlink/vetlink-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/vetlink/vetlink-api/internal/domains/pets/application"
	petports "github.com/vetlink/vetlink-api/internal/domains/pets/ports"

	schedulingmemory "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/memory"
	schedulingobs "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/observability"
	schedulingpostgres "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/persistence/postgres"
	schedulingapp "github.com/vetlink/vetlink-api/internal/domains/scheduling/application"
	schedulingports "github.com/vetlink/vetlink-api/internal/domains/scheduling/ports"

	"github.com/vetlink/vetlink-api/internal/clients/http/notify"
	"github.com/vetlink/vetlink-api/internal/platform/migrations"
	platformobservability "github.com/vetlink/vetlink-api/internal/platform/observability"
	platformpostgres "github.com/vetlink/vetlink-api/internal/platform/postgres"
)

// Run boots the VetLink HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "vetlink-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to run database migrations", slog.String("error", err.Error()))
		}
	}

	schedulingService := schedulingobs.New(
		schedulingapp.NewService(buildSchedulingRepository(db, logger)),
		schedulingobs.WithLogger(logger),
		schedulingobs.WithTracer(instruments.Tracer("internal.scheduling.application")),
		schedulingobs.WithMeter(instruments.Meter("internal.scheduling.application")),
	)

	petService := petsapp.NewService(buildPetRepository(db, logger))
	accountService := buildAccountService(db, logger)

	notifier := appointmentports.NoopNotifier
	if cfg.NotifyWebhookURL != "" {
		notifyClient, err := notify.NewClient(cfg.NotifyWebhookURL, notify.WithLogger(logger))
		if err != nil {
			logger.Warn("invalid notification webhook URL, notifications disabled", slog.String("error", err.Error()))
		} else {
			notifier = notifyClient
			logger.Info("appointment notifications enabled", slog.String("url", cfg.NotifyWebhookURL))
		}
	}

	var completion appointmentports.CompletionScheduler = appointmentsworkflows.NewSweepCompletionScheduler()
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, relying on completion sweep", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		completion = appointmentsworkflows.NewTemporalCompletionScheduler(temporalClient)
		logger.Info("Temporal completion workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreAppointments := appointmentsapp.NewService(
		buildAppointmentRepository(db, logger),
		appointmentsapp.WithPetDirectory(petService),
		appointmentsapp.WithNotifier(notifier),
		appointmentsapp.WithCompletionScheduler(completion),
	)
	appointmentService := appointmentsobs.New(
		coreAppointments,
		appointmentsobs.WithLogger(logger),
		appointmentsobs.WithTracer(instruments.Tracer("internal.appointments.application")),
		appointmentsobs.WithMeter(instruments.Meter("internal.appointments.application")),
	)

	handlers := vetlinkserver.ApiHandleFunctions{
		SchedulingAPI:   vetlinkserver.NewSchedulingAPI(schedulingService),
		AppointmentsAPI: vetlinkserver.NewAppointmentsAPI(appointmentService),
		PetAPI:          vetlinkserver.NewPetAPI(petService),
		UserAPI:         vetlinkserver.NewUserAPI(accountService),
	}

	router := vetlinkserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		vetlinkserver.SessionMiddleware(accountService),
	)
	addr := ":" + cfg.Port
	logger.Info("VetLink API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("VetLink API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildSchedulingRepository(db *gorm.DB, logger *slog.Logger) schedulingports.Repository {
	if db == nil {
		logger.Warn("postgres unavailable, falling back to in-memory availability repository")
		return schedulingmemory.NewRepository()
	}
	logger.Info("availability repository configured with postgres")
	return schedulingpostgres.NewRepository(db)
}

func buildAppointmentRepository(db *gorm.DB, logger *slog.Logger) appointmentports.Repository {
	if db == nil {
		logger.Warn("postgres unavailable, falling back to in-memory appointment repository")
		return appointmentsmemory.NewRepository()
	}
	logger.Info("appointment repository configured with postgres")
	return appointmentspostgres.NewRepository(db)
}

func buildPetRepository(db *gorm.DB, logger *slog.Logger) petports.Repository {
	if db == nil {
		logger.Warn("postgres unavailable, falling back to in-memory pet repository")
		return petsmemory.NewRepository()
	}
	logger.Info("pet repository configured with postgres")
	return petspostgres.NewRepository(db)
}

func buildAccountService(db *gorm.DB, logger *slog.Logger) accountports.Service {
	if db == nil {
		logger.Warn("postgres unavailable, falling back to in-memory accounts")
		return accountsapp.NewService(accountsmemory.NewRepository(), accountsmemory.NewSessionStore())
	}
	logger.Info("account repository configured with postgres")
	return accountsapp.NewService(
		accountspostgres.NewRepository(db),
		accountspostgres.NewSessionStore(db, accountspostgres.DefaultSessionTTL),
	)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
