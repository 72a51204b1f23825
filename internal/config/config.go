// Package config loads the optional elfmap tool configuration. Values
// supply defaults for CLI flags and the server; flags given explicitly
// always win.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the tool configuration read from a config.toml file.
type Config struct {
	Output OutputConfig `toml:"output"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig holds rendering defaults for the CLI.
type OutputConfig struct {
	Format string `toml:"format"` // text, json, msgpack, map
	Color  bool   `toml:"color"`
	Notes  bool   `toml:"notes"`
	Width  int    `toml:"width"` // byte-map columns, 0 = terminal width
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Root  string `toml:"root"` // directory the layout endpoint may read
	Watch bool   `toml:"watch"`
}

// LogConfig holds logging defaults.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Level   string `toml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			Notes:  true,
			Width:  0,
		},
		Server: ServerConfig{
			Addr: ":8950",
			Root: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the user config file location, ~/.elfmap/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".elfmap", "config.toml"), nil
}

// Load decodes a TOML config file over the built-in defaults. Fields the
// file does not set keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the user config file when it exists and the plain
// defaults otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) validate() error {
	switch c.Output.Format {
	case "text", "json", "msgpack", "map":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("negative byte-map width %d", c.Output.Width)
	}
	return nil
}

// SlogLevel maps the configured level name onto its slog value.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
