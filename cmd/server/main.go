package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/postdesk/internal/adapter"
	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/crypto"
	"github.com/MKhiriev/postdesk/internal/handler"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/server"
	"github.com/MKhiriev/postdesk/internal/service"
	"github.com/MKhiriev/postdesk/internal/store"
	"github.com/MKhiriev/postdesk/internal/telemetry"
	"github.com/MKhiriev/postdesk/internal/workers"
	"github.com/MKhiriev/postdesk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("postdesk-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if !logger.SetLevel(cfg.App.LogLevel) {
		log.Warn().Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}

	log.Debug().
		Str("env", cfg.App.Environment).
		Str("public_url", cfg.App.PublicURL).
		Str("identity_url", cfg.Identity.URL).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Bool("reset_check_user_exists", cfg.App.ResetCheckUserExists).
		Msg("received configs")

	ctx := context.Background()
	version := buildVersion
	if cfg.App.Version != "" {
		version = cfg.App.Version
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Err(err).Msg("tracing disabled")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Err(err).Msg("telemetry shutdown")
		}
	}()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}
	storages := store.NewStorages(db, log)
	defer storages.Close()

	sealer, err := crypto.NewSealer(cfg.App.SettingsEncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating settings sealer")
	}
	if !sealer.Enabled() {
		log.Warn().Msg("APP_SETTINGS_ENCRYPTION_KEY is empty, integration keys are stored in plain text")
	}

	provider, err := adapter.NewGoTrueAdapter(cfg.Identity, cfg.App.PublicURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity adapter")
	}

	buildInfo := models.NewAppBuildInfo(version, buildDate, buildCommit)
	services := service.NewServices(storages, provider, sealer, cfg.App, buildInfo, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers()
	if handlers.GRPC != nil {
		background = workers.NewWorkers(workers.NewHealthProbe(provider, handlers.GRPC, cfg.Workers.HealthInterval, log))
	}

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
