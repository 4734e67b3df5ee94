// Package config resolves the terminal client's settings. Sources are
// applied in order, later ones winning: defaults, the YAML config file,
// environment variables, then command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvServerURL = "ROLODEX_SERVER_URL"
	EnvStateDB   = "ROLODEX_STATE_DB"
	EnvConfig    = "ROLODEX_CONFIG"
	EnvLogLevel  = "LOG_LEVEL"
)

// Config holds the client settings.
type Config struct {
	ServerURL      string        `yaml:"server_url"`
	StateDB        string        `yaml:"state_db"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in settings. The state file lives in the
// user's config directory when one is available.
func Default() Config {
	return Config{
		ServerURL:      "http://localhost:8080",
		StateDB:        defaultStatePath(),
		LogLevel:       "warn",
		RequestTimeout: 15 * time.Second,
	}
}

// DefaultPath is the config file read when none is named explicitly.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rolodex.yaml"
	}
	return filepath.Join(dir, "rolodex", "config.yaml")
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rolodex-state.db"
	}
	return filepath.Join(dir, "rolodex", "state.db")
}

// Load returns the defaults overlaid with the config file and environment.
// path names the config file; when empty, $ROLODEX_CONFIG and then
// DefaultPath are tried, and a missing default file is not an error.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := getenv(EnvConfig); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath()
		}
	}

	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	cfg.mergeEnv(getenv)
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc Config
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.ServerURL != "" {
		c.ServerURL = fc.ServerURL
	}
	if fc.StateDB != "" {
		c.StateDB = fc.StateDB
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.RequestTimeout != 0 {
		c.RequestTimeout = fc.RequestTimeout
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) {
	if v := getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := getenv(EnvStateDB); v != "" {
		c.StateDB = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server url %q must start with http:// or https://", c.ServerURL)
	}
	if c.StateDB == "" {
		return errors.New("state db path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
