package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if cfg.PollMaxAttempts != 60 {
		t.Errorf("PollMaxAttempts = %d, want 60", cfg.PollMaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "base_url: https://dl.example.com\npoll_interval: 2s\npoll_max_attempts: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.BaseURL != "https://dl.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.PollMaxAttempts != 10 {
		t.Errorf("PollMaxAttempts = %d, want 10", cfg.PollMaxAttempts)
	}
	// Untouched fields keep defaults.
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want default 30s", cfg.RequestTimeout)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://file.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("YTGRAB_BASE_URL", "https://env.example.com")
	t.Setenv("YTGRAB_POLL_MAX_ATTEMPTS", "7")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	if cfg.PollMaxAttempts != 7 {
		t.Errorf("PollMaxAttempts = %d, want 7", cfg.PollMaxAttempts)
	}
}

func TestValidateRejectsBadPolling(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.PollInterval = 0 }},
		{"negative attempts", func(c *Config) { c.PollMaxAttempts = -1 }},
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"negative settle", func(c *Config) { c.SettleDelay = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadInvalidEnvValueIgnored(t *testing.T) {
	t.Setenv("YTGRAB_POLL_INTERVAL", "not-a-duration")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want default kept", cfg.PollInterval)
	}
}
