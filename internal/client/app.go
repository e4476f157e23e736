package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/internal/tui"
	"github.com/MKhiriev/go-auth-keeper/models"
)

type App struct {
	storages *store.Storages
	services *service.Services
	ui       UI

	logger *logger.Logger
}

// NewApp opens the configured store, applies migrations and builds the
// services and the terminal UI on top of it. If any step fails, whatever was
// already opened is closed before returning.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	app, err := newApp(storages, cfg, buildInfo, log)
	if err != nil {
		return nil, errors.Join(err, storages.Close())
	}

	return app, nil
}

func newApp(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	codec, err := crypto.NewArgon2Codec(cfg.App.Argon2)
	if err != nil {
		return nil, fmt.Errorf("create credential codec: %w", err)
	}

	services, err := service.NewServices(storages, codec, buildInfo, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	ui, err := tui.New(services, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return &App{
		storages: storages,
		services: services,
		ui:       ui,
		logger:   log,
	}, nil
}

// Run blocks until the user leaves the UI or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Str("storage", a.storages.Location()).Msg("session started")

	err := a.ui.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.logger.Info().Msg("session interrupted")
		return nil
	}
	if err != nil {
		a.logger.Err(err).Msg("ui stopped with error")
		return fmt.Errorf("run ui: %w", err)
	}

	a.logger.Info().Msg("session finished")
	return nil
}

func (a *App) Close() error {
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("error closing storage")
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
