package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[output]
format = "json"
width = 120

[server]
addr = "127.0.0.1:9000"
watch = true

[log]
enabled = true
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.Width != 120 {
		t.Errorf("width = %d, want 120", cfg.Output.Width)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if !cfg.Server.Watch {
		t.Error("watch not set")
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.Log.SlogLevel())
	}

	// Unset fields keep their defaults.
	if cfg.Server.Root != "." {
		t.Errorf("root = %q, want default", cfg.Server.Root)
	}
	if !cfg.Output.Notes {
		t.Error("notes default lost")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, `
[output]
format = "yaml"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("err = %v, want unknown output format", err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, "[output\nformat=")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Fatalf("err = %v, want parse failure", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
