package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/deevus/arrivals-tui/internal/transit"
)

// Default values applied when a key is absent from the config file.
const (
	DefaultRefreshInterval = 60 * time.Second
	DefaultTickInterval    = time.Second
	DefaultRetries         = 1
	DefaultConcurrency     = 1
)

// Config is the top-level configuration. The set of lines is fixed and is
// not configurable.
type Config struct {
	RefreshInterval Duration `toml:"refresh_interval"`
	RequestTimeout  Duration `toml:"request_timeout"`
	BaseURL         string   `toml:"base_url"`
	UserAgent       string   `toml:"user_agent"`
	Retries         *int     `toml:"retries"`
	Concurrency     int      `toml:"concurrency"`
	LogPath         string   `toml:"log_path"`
}

// Duration is a time.Duration written as a string such as "60s" or "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "arrivals-tui", "config.toml")
}

// DefaultLogPath returns the default debug log path.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(dir, "arrivals-tui", "debug.log")
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(toml.MetaData{})
	return cfg
}

// LoadFrom reads and parses the config file at the given path and applies
// defaults for missing keys. Unknown keys, including any attempt to list
// lines, are rejected.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading config from %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.applyDefaults(md)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like LoadFrom but returns Default when no file
// exists at path.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// applyDefaults fills keys that are absent from the file. Keys written
// explicitly, even as zero, are left for Validate to judge.
func (c *Config) applyDefaults(md toml.MetaData) {
	unset := func(key string) bool { return !md.IsDefined(key) }

	if unset("refresh_interval") {
		c.RefreshInterval.Duration = DefaultRefreshInterval
	}
	if unset("request_timeout") {
		c.RequestTimeout.Duration = transit.DefaultTimeout
	}
	if unset("base_url") {
		c.BaseURL = transit.DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = transit.DefaultUserAgent
	}
	if c.Retries == nil {
		r := DefaultRetries
		c.Retries = &r
	}
	if unset("concurrency") {
		c.Concurrency = DefaultConcurrency
	}
	if c.LogPath == "" {
		c.LogPath = DefaultLogPath()
	}
	c.LogPath = expandPath(c.LogPath)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.RefreshInterval.Duration <= 0:
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	case c.RequestTimeout.Duration <= 0:
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	case c.BaseURL == "":
		return errors.New("base_url must not be empty")
	case c.Retries != nil && *c.Retries < 0:
		return fmt.Errorf("retries must not be negative, got %d", *c.Retries)
	case c.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

// RetryCount returns the configured number of retries.
func (c *Config) RetryCount() int {
	if c.Retries == nil {
		return DefaultRetries
	}
	return *c.Retries
}

// ClientParams returns the transport settings for a transit.Client.
func (c *Config) ClientParams() transit.ClientParams {
	return transit.ClientParams{
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
		Timeout:   c.RequestTimeout.Duration,
		Retries:   c.RetryCount(),
	}
}

// expandPath expands ~ to $HOME and then expands all environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + path[1:]
	}
	return os.ExpandEnv(path)
}
