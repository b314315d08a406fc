package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/adapters/config"
	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo"
	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/smartpantry/internal/adapters/outbox"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/service"
)

// One-shot sweep, for cron jobs outside the HTTP service or manual backfills.
// Events are written to the outbox; the HTTP service relays them.
func main() {
	date := flag.String("date", "", "reference date (YYYY-MM-DD), defaults to today in SWEEP_TIMEZONE")
	flag.Parse()

	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction, cfg.Logger.Level); err != nil {
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	os.Exit(run(cfg, *date))
}

func run(cfg *config.Config, date string) int {
	ctx := logger.WithAttributes(context.Background(), map[string]any{"sweep.trigger": "cli"})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.Shutdown(shutdownCtx)
	}()

	calendar := service.NewCalendar(cfg.Sweep.Location)
	referenceDate := calendar.Today()
	if date != "" {
		parsed, err := domain.ParseDate(date)
		if err != nil {
			logger.Error(ctx, "Invalid -date flag", err, map[string]any{"date": date})
			return 1
		}
		referenceDate = parsed
	}

	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB", err, nil)
		return 1
	}
	defer mongo.Disconnect(mongoClient)

	database := mongoClient.Database(cfg.Mongo.Database)
	sweeper := service.NewSweeperService(
		repository.NewProductRepository(database),
		mongo.NewTransactionManager(mongoClient),
		outbox.NewRecorder(repository.NewOutboxRepository(database)),
	)

	report := sweeper.Sweep(ctx, referenceDate)
	fmt.Printf("swept %s: scanned=%d updated=%d skipped=%d missing=%d failed=%d aborted=%t\n",
		report.ReferenceDate.Format(domain.DateLayout), report.Scanned, report.Updated, report.Skipped,
		report.Missing, report.Failed, report.Aborted)

	if report.Aborted || report.Failed > 0 {
		return 2
	}
	return 0
}
