package main

import (
	"context"
	"log"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/omarhimada/loginsynth/internal/config"
	"github.com/omarhimada/loginsynth/internal/geo"
	"github.com/omarhimada/loginsynth/internal/registry"
	"github.com/omarhimada/loginsynth/internal/sink"
	"github.com/omarhimada/loginsynth/internal/synth"
)

func init() {
	if os.Getenv("RUNNING_IN_DOCKER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found (this is fine in Docker)")
		}
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Setup()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	faker := gofakeit.New(uint64(cfg.Seed))
	catalog := geo.NewCatalog(faker)
	reg := registry.Build(faker, catalog, registry.Options{
		MinUsersPerTenant: cfg.MinUsersPerTenant,
		MaxUsersPerTenant: cfg.MaxUsersPerTenant,
	})
	logger.Info("registry built",
		zap.Int("tenants", len(reg.Tenants)),
		zap.Int("clients", len(reg.Clients)),
		zap.Int("users", len(reg.Users)),
	)

	generator := synth.NewGenerator(faker, reg, catalog, logger)
	events, err := generator.Generate(cfg.Start, cfg.End, cfg.EventsPerDay)
	if err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}

	out, err := os.Create(cfg.OutFile)
	if err != nil {
		logger.Fatal("could not create output file", zap.Error(err), zap.String("path", cfg.OutFile))
	}
	if err := sink.WriteCSV(out, events); err != nil {
		out.Close()
		logger.Fatal("could not write csv", zap.Error(err))
	}
	if err := out.Close(); err != nil {
		logger.Fatal("could not close output file", zap.Error(err))
	}
	logger.Info("csv written", zap.String("path", cfg.OutFile), zap.Int("events", len(events)))

	ctx := context.Background()
	runID := uuid.NewString()

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := sink.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, "loginsynth", logger)
		if err != nil {
			logger.Fatal("could not create kafka publisher", zap.Error(err))
		}
		defer publisher.Close()
		if err := publisher.PublishAll(ctx, runID, events); err != nil {
			logger.Fatal("kafka publish failed", zap.Error(err))
		}
	}

	if cfg.PostgresDSN != "" {
		if err := sink.LoadPostgres(ctx, cfg.PostgresDSN, events, logger); err != nil {
			logger.Fatal("postgres load failed", zap.Error(err))
		}
	}
}
