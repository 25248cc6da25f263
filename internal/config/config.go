// Package config loads insight configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all insight configuration.
type Config struct {
	Sessions SessionsConfig  `toml:"sessions"`
	Server   ServerConfig    `toml:"server"`
	Pricing  PricingOverride `toml:"pricing"`
}

// SessionsConfig controls where session logs live and how they are classified.
type SessionsConfig struct {
	Dir               string `toml:"dir,omitempty"`
	DBPath            string `toml:"db_path,omitempty"`
	ScanIntervalSecs  int    `toml:"scan_interval_secs"`
	ActiveWindowSecs  int    `toml:"active_window_secs"`
	SettledWindowSecs int    `toml:"settled_window_secs"`
	HistoryLimit      int    `toml:"history_limit"`
}

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// PricingOverride allows user-defined token rates.
type PricingOverride struct {
	InputPerMTok  *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok *float64 `toml:"output_per_mtok,omitempty"`
}

// DefaultConfig returns the default configuration.
// Classification windows: a session is Active for 120s after its last
// write and becomes Historical after 600s; in between it is Settling.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Sessions: SessionsConfig{
			Dir:               filepath.Join(home, ".openclaw", "sessions"),
			ScanIntervalSecs:  10,
			ActiveWindowSecs:  120,
			SettledWindowSecs: 600,
			HistoryLimit:      10,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8050",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "insight")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "insight")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// INSIGHT_SESSIONS_DIR overrides the sessions directory when set.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if dir := os.Getenv("INSIGHT_SESSIONS_DIR"); dir != "" {
		cfg.Sessions.Dir = dir
	}
	if cfg.Sessions.DBPath == "" {
		cfg.Sessions.DBPath = filepath.Join(ConfigDir(), "history.db")
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ScanInterval returns the collector cycle interval.
func (c Config) ScanInterval() time.Duration {
	if c.Sessions.ScanIntervalSecs < 2 {
		return 10 * time.Second
	}
	return time.Duration(c.Sessions.ScanIntervalSecs) * time.Second
}

// ActiveWindow returns the Active classification threshold.
func (c Config) ActiveWindow() time.Duration {
	if c.Sessions.ActiveWindowSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.Sessions.ActiveWindowSecs) * time.Second
}

// SettledWindow returns the Historical classification threshold.
// Always strictly greater than the active window.
func (c Config) SettledWindow() time.Duration {
	w := time.Duration(c.Sessions.SettledWindowSecs) * time.Second
	if w <= c.ActiveWindow() {
		return 600 * time.Second
	}
	return w
}
