package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/pages"
	"github.com/spolify/spolify/internal/shared"
	"github.com/spolify/spolify/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client *api.Client
	store  *store.Store
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *api.Client
	Store  *store.Store
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		client: opts.Client,
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, songsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// openStore opens the local store on first use, running migrations.
func (r *Runner) openStore() (*store.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	s, err := store.Open(r.config.Store.Path, r.config.Store.MaxOpenConns, r.config.Store.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	r.store = s
	return s, nil
}

// controllers builds the page controllers shared by the CLI actions and the
// TUI: backend client, session marker, and local caches wired together. A 401
// from the backend drops the session marker immediately.
func (r *Runner) controllers() (*pages.Controllers, error) {
	if r.client == nil {
		return nil, fmt.Errorf("%w: backend client not configured", shared.ErrMissingConfig)
	}

	s, err := r.openStore()
	if err != nil {
		return nil, err
	}

	r.client.OnUnauthorized(func() {
		if err := s.Session.Clear(); err != nil {
			r.logger.Warn("failed to clear session marker", "err", err)
		}
	})

	return pages.New(pages.Opts{
		Backend:       r.client,
		Session:       s.Session,
		Logger:        r.logger,
		PageSize:      r.config.UI.PageSize,
		PlaylistCache: s.Playlists,
		SongCache:     s.Songs,
	}), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
