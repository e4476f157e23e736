package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-auth-keeper/internal/client"
	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
	"golang.org/x/term"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("accounts needs an interactive terminal")
	}

	log, logFile, err := logger.NewFileLogger("accounts", cfg.Logger.File, cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	defer logFile.Close()

	log.Debug().
		Str("driver", cfg.Storage.DB.Driver).
		Dur("query_timeout", cfg.Storage.DB.QueryTimeout).
		Dur("recent_login_window", cfg.App.RecentLoginWindow).
		Msg("received configs")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	app, err := client.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Err(err).Msg("init app error")
		return err
	}
	defer app.Close()

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("app run error")
		return err
	}

	return nil
}
