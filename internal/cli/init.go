// Package cli provides the process bootstrap shared by the commands:
// environment loading, configuration, logging and signal handling.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spese-client/internal/config"
	applog "spese-client/internal/log"
)

// LoadEnvFile loads .env files for local development. A missing file is not
// an error; a malformed one is.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReportConfigError logs a configuration failure to w. It is used before
// SetupLogger, when no configured logger exists yet.
func ReportConfigError(w io.Writer, msg string, err error) {
	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentConfig,
		Output:    w,
	})
	logger.Error(msg,
		applog.NewFields().
			WithOperation(applog.OpStartup).
			WithError(err).
			WithErrorType(applog.ErrorTypeConfiguration).
			ToSlice()...)
}

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. Logs go to w so they do not interleave with prompts on stdout.
func SetupLogger(cfg *config.Config, w io.Writer) *applog.Logger {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = applog.DefaultConfig().Level
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
		Output:    w,
	})
	applog.SetDefault(logger)
	return logger
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String(), applog.FieldOperation, applog.OpShutdown)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
