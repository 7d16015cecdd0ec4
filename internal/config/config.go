// Package config handles the XDG configuration directory, file paths and
// the settings file.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// SettingsFile is the TOML settings filename.
	SettingsFile = "config.toml"

	// SessionFile is the sqlite store holding the login session.
	SessionFile = "session.db"

	// LogFile receives the interactive view's debug log.
	LogFile = "taskboard.log"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are loaded from SettingsFile.
	Settings Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// SessionPath returns the path to the session store.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// LogPath returns the path to the debug log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Load ensures the directory exists and reads the settings file, writing
// the defaults on first use.
func (c *Config) Load() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	s, err := LoadOrCreate(c.SettingsPath())
	if err != nil {
		return err
	}
	c.Settings = s
	return nil
}
