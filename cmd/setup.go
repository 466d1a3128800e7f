package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spolify/spolify/internal/shared"
	"github.com/spolify/spolify/internal/store"
	"github.com/urfave/cli/v3"
)

// Setup creates a config file when missing and initializes the local store,
// running migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		} else {
			r.config = config
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err := shared.LoadConfig(configPath); err == nil {
				r.config = config
			}
		}
	}

	r.logger.Info("initializing local store", "path", r.config.Store.Path)

	s, err := store.Open(r.config.Store.Path, r.config.Store.MaxOpenConns, r.config.Store.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	r.store = s

	r.logger.Infof("setup complete for store: %v", r.config.Store.Path)
	return r.writePlain("✓ Setup complete\n")
}
