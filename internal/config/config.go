// Package config handles the XDG configuration directory and the optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todolist"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// LogFile is the log filename used by the terminal UI.
	LogFile = "todolist.log"

	// DefaultBaseURL is the public to-do demo API.
	DefaultBaseURL = "https://playground.4geeks.com/todo"

	// DefaultUsername is the user namespace used when none is configured.
	DefaultUsername = "todolist"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the remote API root, without a trailing slash.
	BaseURL string

	// Username is the remote user namespace the tasks live in.
	Username string

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration

	// LogLevel is the level used by the terminal UI log file.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Timeout  string `toml:"timeout"`
	LogLevel string `toml:"log_level"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todolist or $HOME/.config/todolist.
// Settings from config.toml in that directory are applied when the file exists.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:      dir,
		BaseURL:  DefaultBaseURL,
		Username: DefaultUsername,
		LogLevel: "info",
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	return cfg, nil
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

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path to the terminal UI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasFile checks if config.toml exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

func (c *Config) loadFile() error {
	var fc fileConfig
	if _, err := toml.DecodeFile(c.FilePath(), &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.Username != "" {
		c.Username = fc.Username
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: timeout: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings that reach the remote API.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return errors.New("base url required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("invalid base url: %s", c.BaseURL)
	}
	if err := ValidateUsername(c.Username); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

// ValidateUsername reports whether name can be used as a single URL path segment.
func ValidateUsername(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("username required")
	}
	if name != strings.TrimSpace(name) || strings.ContainsAny(name, "/?#") {
		return fmt.Errorf("invalid username: %q", name)
	}
	return nil
}
