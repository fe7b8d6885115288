package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	appointmentspostgres "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/persistence/postgres"
	appointmentsapp "github.com/vetlink/vetlink-api/internal/domains/appointments/application"
	platformpostgres "github.com/vetlink/vetlink-api/internal/platform/postgres"
)

// Safety net for confirmed appointments whose completion workflow never ran.
// Intended to be invoked periodically, e.g. from cron.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot sweep appointments")
	}

	service := appointmentsapp.NewService(appointmentspostgres.NewRepository(db))
	completed, err := service.CompleteElapsed(ctx)
	if err != nil {
		log.Fatalf("failed to sweep elapsed appointments: %v", err)
	}
	log.Printf("completion sweep finished, %d appointments completed", completed)
}
