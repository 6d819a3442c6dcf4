package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/internal/store"
)

// UI is the interactive front end driven by [App].
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	ui       UI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, storages *store.ClientStorages, ui UI, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app: services and ui are required")
	}
	return &App{services: services, storages: storages, ui: ui, logger: log}, nil
}

// Run restores the session, shows the UI and tears everything down when the
// UI exits.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown()

	loaded, err := a.services.Session.Init(ctx)
	if err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	a.logger.Info().Bool("auto_loaded", loaded).Msg("session initialised")

	if err = a.ui.Run(ctx); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func (a *App) shutdown() {
	a.services.Session.Teardown()
	if a.storages == nil {
		return
	}
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("error closing storages")
	}
}
