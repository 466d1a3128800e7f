package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	client, err := api.NewClient(api.ClientOpts{
		BaseURL:        config.Server.BaseURL,
		Timeout:        time.Duration(config.Server.TimeoutSeconds) * time.Second,
		RequestsPerSec: config.Server.RequestsPerSec,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatalf("failed to create backend client: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "spolify",
		Usage:    "Browse, reorder and manage your personal music library",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if apiErr, ok := api.AsError(err); errors.Is(err, shared.ErrNotAuthenticated) || (ok && apiErr.IsAuth()) {
			logger.Warn("not signed in, run: spolify auth login")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
