// Package config handles TOML-based configuration loading and validation.
// Configuration is parsed as data only — no code execution is possible.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"marquee/internal/httputil"
)

// Config holds all application configuration. Player sources and the
// default-player preference live in the data store, not here; config covers
// only the knobs that do not change from inside the app.
type Config struct {
	FeedURL  string `toml:"feed_url"`
	History  bool   `toml:"history"`
	LogLevel string `toml:"log_level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		FeedURL:  "https://raw.githubusercontent.com/marquee-sources/players/main/players.json",
		History:  true,
		LogLevel: "warn",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "marquee"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "marquee"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("locating config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.FeedURL != "" {
		if err := httputil.ValidateFeedURL(c.FeedURL); err != nil {
			return fmt.Errorf("feed_url: %w", err)
		}
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("unsupported log_level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}

	return nil
}
