package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("reads a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[server]\nbase_url = \"http://localhost:9000\"\n\n[ui]\npage_size = 3\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Server.BaseURL != "http://localhost:9000" {
			t.Errorf("unexpected base URL %q", config.Server.BaseURL)
		}
		if config.UI.PageSize != 3 {
			t.Errorf("unexpected page size %d", config.UI.PageSize)
		}
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[server\nnot toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("missing file surfaces the read error", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("defaults the page size", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[server]\nbase_url = \"http://localhost\"\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.UI.PageSize != 5 {
			t.Errorf("expected the default page size, got %d", config.UI.PageSize)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Server.BaseURL == "" {
		t.Error("expected a default base URL")
	}
	if config.UI.PageSize <= 0 {
		t.Error("expected a positive default page size")
	}
}
