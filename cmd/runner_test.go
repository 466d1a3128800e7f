package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/shared"
	tu "github.com/spolify/spolify/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			client, err := api.NewClient(api.ClientOpts{BaseURL: "http://localhost:8080"})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Client: client,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output == nil {
				t.Error("expected default output to be set")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"setup", "auth", "playlists", "songs", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, name := range want {
			if commands[i].Name != name {
				t.Errorf("expected command %q at position %d, got %q", name, i, commands[i].Name)
			}
		}
	})

	t.Run("controllers", func(t *testing.T) {
		t.Run("requires a client", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			_, err := runner.controllers()
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("wires client, session and caches", func(t *testing.T) {
			client, err := api.NewClient(api.ClientOpts{BaseURL: "http://localhost:8080"})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			config := shared.DefaultConfig()
			config.Store.Path = ":memory:"

			runner := NewRunner(RunnerOpts{Config: config, Client: client})
			t.Cleanup(func() {
				if runner.store != nil {
					runner.store.Close()
				}
			})

			controllers, err := runner.controllers()
			if err != nil {
				t.Fatalf("failed to build controllers: %v", err)
			}
			if controllers == nil {
				t.Fatal("expected controllers")
			}
			if runner.store.Session.Active() {
				t.Error("expected no session marker in a fresh store")
			}
		})
	})
}

func TestOutput(t *testing.T) {
	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"count": 3}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if got := output.String(); got != "{\"count\":3}\n" {
				t.Errorf("unexpected output %q", got)
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"count": 3}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "  \"count\": 3") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})

		t.Run("write failure surfaces", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON("data", false); err == nil {
				t.Error("expected an error from a failing writer")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}
