package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/client"
	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/internal/tui"
	"github.com/MKhiriev/vault-browser/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("vault-browser", config.DefaultLogLevel).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("vault-browser", cfg.App.LogLevel)
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().
		Str("version", buildInfo.BuildVersion()).
		Str("date", buildInfo.BuildDate()).
		Str("commit", buildInfo.BuildCommit()).
		Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vaultAdapter, err := adapter.NewVaultAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create vault adapter")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(vaultAdapter, storages, cfg, log)

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, storages, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
