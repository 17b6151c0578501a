// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// BaseURL is the root of the remote downloader service
	BaseURL string `yaml:"base_url"`
	// RequestTimeout is the per-request HTTP timeout
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// UserAgent sent with every request
	UserAgent string `yaml:"user_agent"`

	// PollInterval is the fixed delay between job status polls
	PollInterval time.Duration `yaml:"poll_interval"`
	// PollMaxAttempts bounds the status polls per session
	PollMaxAttempts int `yaml:"poll_max_attempts"`
	// SettleDelay is the pause between a completed status and
	// surfacing the result
	SettleDelay time.Duration `yaml:"settle_delay"`

	// OutputDir is where retrieved artifacts are saved
	OutputDir string `yaml:"output_dir"`
	// LogLevel is a logrus level name (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns configuration matching the documented
// protocol: one poll every 5 seconds, at most 60 attempts.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "http://localhost:5000",
		RequestTimeout:  30 * time.Second,
		UserAgent:       "ytgrab/1.0",
		PollInterval:    5 * time.Second,
		PollMaxAttempts: 60,
		SettleDelay:     time.Second,
		OutputDir:       ".",
		LogLevel:        "info",
	}
}

// UnmarshalYAML decodes the config file form, where durations are
// written as strings like "5s" or "1m30s". Absent keys leave the
// existing values (the defaults) untouched.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL         *string `yaml:"base_url"`
		RequestTimeout  *string `yaml:"request_timeout"`
		UserAgent       *string `yaml:"user_agent"`
		PollInterval    *string `yaml:"poll_interval"`
		PollMaxAttempts *int    `yaml:"poll_max_attempts"`
		SettleDelay     *string `yaml:"settle_delay"`
		OutputDir       *string `yaml:"output_dir"`
		LogLevel        *string `yaml:"log_level"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.BaseURL != nil {
		c.BaseURL = *raw.BaseURL
	}
	if raw.UserAgent != nil {
		c.UserAgent = *raw.UserAgent
	}
	if raw.PollMaxAttempts != nil {
		c.PollMaxAttempts = *raw.PollMaxAttempts
	}
	if raw.OutputDir != nil {
		c.OutputDir = *raw.OutputDir
	}
	if raw.LogLevel != nil {
		c.LogLevel = *raw.LogLevel
	}

	durations := []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &c.RequestTimeout},
		{"poll_interval", raw.PollInterval, &c.PollInterval},
		{"settle_delay", raw.SettleDelay, &c.SettleDelay},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Load loads configuration from the config file and environment
// variables, applying defaults. Priority: env vars > config file >
// defaults.
func Load() (*Config, error) {
	return LoadFrom(defaultConfigPath())
}

// LoadFrom loads configuration from a specific file path; the file is
// optional.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Config file is optional.
		default:
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the polling parameters.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	if c.PollMaxAttempts <= 0 {
		return fmt.Errorf("poll_max_attempts must be positive, got %d", c.PollMaxAttempts)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative, got %v", c.SettleDelay)
	}
	return nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTGRAB_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("YTGRAB_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("YTGRAB_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PollInterval = d
		}
	}
	if v := os.Getenv("YTGRAB_POLL_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PollMaxAttempts = n
		}
	}
	if v := os.Getenv("YTGRAB_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("YTGRAB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ytgrab", "config.yaml")
}
