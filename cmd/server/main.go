package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/events"
	"github.com/MKhiriev/go-upload-desk/internal/handler"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/server"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/internal/store"
	"github.com/MKhiriev/go-upload-desk/internal/workers"
	"github.com/MKhiriev/go-upload-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// limiterCleanupInterval is how often idle in-process rate limit buckets
// are dropped.
const limiterCleanupInterval = 5 * time.Minute

func main() {
	printBuildInfo()

	log := logger.NewLogger("upload-desk-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	publisher, err := events.NewPublisher(cfg.Broker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating event publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event publisher")
		}
	}()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, publisher, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages.RateLimiter, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg, err := newWorkers(cfg, storages, services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating background workers")
	}

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// newWorkers collects the background jobs enabled by cfg: the in-process
// limiter cleanup and the Kafka status consumer.
func newWorkers(cfg *config.StructuredConfig, storages *store.Storages, services *service.Services, log *logger.Logger) (*workers.Workers, error) {
	bg := workers.NewWorkers()

	if limiter, ok := storages.RateLimiter.(*store.MemoryRateLimiter); ok {
		bg.Add(workers.Func(func(ctx context.Context) error {
			limiter.Run(ctx, limiterCleanupInterval)
			return nil
		}))
	}

	if cfg.Broker.Enabled() {
		consumer, err := events.NewStatusConsumer(cfg.Broker, services.UploadService, log)
		if err != nil {
			return nil, fmt.Errorf("status consumer: %w", err)
		}
		bg.Add(consumer)
	}

	return bg, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
