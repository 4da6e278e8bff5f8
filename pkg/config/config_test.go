package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to build a minimal valid config that can be tweaked in tests.
func validBaseConfig() *Config {
	cfg := DefaultConfig()
	cfg.RateLimiting.Enabled = true
	cfg.RateLimiting.RequestsPerSecond = 10
	cfg.RateLimiting.Burst = 20
	cfg.RateLimiting.MaxConcurrent = 5
	return cfg
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got error: %v", err)
	}
}

func TestValidate_RateLimitingDisabled_AllowsZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimiting.Enabled = false
	// Zero out rate limiting values to ensure they are ignored when disabled.
	cfg.RateLimiting.RequestsPerSecond = 0
	cfg.RateLimiting.Burst = 0
	cfg.RateLimiting.MaxConcurrent = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected config to be valid when rate limiting disabled, got error: %v", err)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name: "rps must be > 0",
			mutate: func(c *Config) {
				c.RateLimiting.RequestsPerSecond = 0
			},
		},
		{
			name: "burst must be > 0",
			mutate: func(c *Config) {
				c.RateLimiting.Burst = 0
			},
		},
		{
			name: "max concurrent must be >= 0",
			mutate: func(c *Config) {
				c.RateLimiting.MaxConcurrent = -1
			},
		},
		{
			name: "server address must not be empty",
			mutate: func(c *Config) {
				c.Server.Address = ""
			},
		},
		{
			name: "item duration must be > 0",
			mutate: func(c *Config) {
				c.Playback.ItemDurationSeconds = 0
			},
		},
		{
			name: "tick interval must be > 0",
			mutate: func(c *Config) {
				c.Playback.TickInterval = 0
			},
		},
		{
			name: "jwt secret must not be empty",
			mutate: func(c *Config) {
				c.Auth.JWTSecret = ""
			},
		},
		{
			name: "token ttl must be > 0",
			mutate: func(c *Config) {
				c.Auth.TokenTTL = 0
			},
		},
		{
			name: "redis address required when enabled",
			mutate: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.Address = ""
			},
		},
		{
			name: "tracing sample rate within range",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.SampleRate = 1.5
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tc.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for case %q, got nil", tc.name)
			}
		})
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default server address, got %s", cfg.Server.Address)
	}
}

func TestLoad_ReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  address: ":9090"
logging:
  level: debug
redis:
  enabled: true
  address: "redis:6379"
  pool_size: 4
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VIDTOK_SERVER_ADDRESS", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("env override should win, got %s", cfg.Server.Address)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level from file, got %s", cfg.Logging.Level)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Address != "redis:6379" || cfg.Redis.PoolSize != 4 {
		t.Errorf("redis section not decoded: %+v", cfg.Redis)
	}
}
