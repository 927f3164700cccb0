// Package config loads and saves the routine TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/routine/internal/ledger"

	"github.com/BurntSushi/toml"
)

const appName = "routine"

// Config holds all routine configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds storage and scheduling preferences.
type GeneralConfig struct {
	DataDir             string `toml:"data_dir,omitempty"`
	StorageKey          string `toml:"storage_key"`
	BackupDir           string `toml:"backup_dir,omitempty"`
	DayCheckIntervalSec int    `toml:"day_check_interval_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			StorageKey:          ledger.DefaultKey,
			DayCheckIntervalSec: 60,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...)
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.StorageKey == "" {
		cfg.General.StorageKey = ledger.DefaultKey
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir returns the directory holding the ledger database.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// DBPath returns the ledger database path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), appName+".db")
}

// BackupDir returns where exports are written; "." when unset.
func (c Config) BackupDir() string {
	if c.General.BackupDir != "" {
		return c.General.BackupDir
	}
	return "."
}

// LogPath returns the log file path.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(StateDir(), appName+".log")
}

// StateDir returns the XDG state directory for logs and pid files.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

// DayCheckInterval returns how often the dashboard re-derives today.
func (c Config) DayCheckInterval() time.Duration {
	if c.General.DayCheckIntervalSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.General.DayCheckIntervalSec) * time.Second
}
