package main

import (
	"context"
	"os"

	"spese-client/internal/api"
	"spese-client/internal/app"
	"spese-client/internal/cli"
	applog "spese-client/internal/log"
	"spese-client/internal/tui"
)

func main() {
	// Load .env file for local development
	if err := cli.LoadEnvFile(); err != nil {
		cli.ReportConfigError(os.Stderr, "Failed to load env file", err)
		os.Exit(1)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.ReportConfigError(os.Stderr, "Configuration validation failed", err)
		os.Exit(1)
	}

	// Logs go to stderr, prompts to stdout
	logger := cli.SetupLogger(cfg, os.Stderr)
	logger.Info("Starting spese", applog.FieldOperation, applog.OpStartup, "api_url", cfg.APIURL)

	client, err := api.New(cfg.APIURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithUserAgent(cfg.UserAgent),
	)
	if err != nil {
		logger.Error("Failed to create API client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()
	ctx = applog.WithContext(ctx, logger)

	a, err := app.New(app.Config{
		Driver:   tui.NewSurveyDriver(os.Stdout),
		Expenses: client.Expenses(),
		Auth:     client.Auth(),
		Logger:   logger,
		Locale:   cfg.Locale,
	})
	if err != nil {
		logger.Error("Failed to create app", "error", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("Session failed", "error", err)
		cancel()
		os.Exit(1)
	}
	logger.Info("Stopped", applog.FieldOperation, applog.OpShutdown)
}
