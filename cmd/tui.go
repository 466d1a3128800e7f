package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spolify/spolify/internal/shared"
	"github.com/spolify/spolify/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the music library.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spolify-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, controllers)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
