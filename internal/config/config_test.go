package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cesargomez89/meting-gateway/internal/constants"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != constants.DefaultPort {
		t.Errorf("Expected Port to be %s, got %s", constants.DefaultPort, cfg.Port)
	}
	if cfg.Host != constants.DefaultHost {
		t.Errorf("Expected Host to be %s, got %s", constants.DefaultHost, cfg.Host)
	}
	if cfg.Concurrency != constants.DefaultConcurrency {
		t.Errorf("Expected Concurrency to be %d, got %d", constants.DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.SearchLimit != constants.DefaultSearchLimit {
		t.Errorf("Expected SearchLimit to be %d, got %d", constants.DefaultSearchLimit, cfg.SearchLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("CONCURRENCY", "3")
	t.Setenv("PLAYLIST_RETRY", "2")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT", "1.5")
	t.Setenv("RANDOM_IP", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be 9090, got %s", cfg.Port)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("Expected DBPath to be :memory:, got %s", cfg.DBPath)
	}
	if cfg.Concurrency != 3 || cfg.PlaylistRetry != 2 {
		t.Errorf("Expected concurrency 3 and retry 2, got %d and %d", cfg.Concurrency, cfg.PlaylistRetry)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected RequestTimeout 5s, got %s", cfg.RequestTimeout)
	}
	if cfg.RateLimit != 1.5 || !cfg.RandomIP {
		t.Errorf("Expected rate 1.5 and random IP, got %g and %v", cfg.RateLimit, cfg.RandomIP)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("CONCURRENCY", "many")
	t.Setenv("RANDOM_IP", "sometimes")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for malformed environment")
	}
	for _, key := range []string{"CONCURRENCY", "RANDOM_IP"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to mention %s, got %v", key, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meting.toml")
	content := `
host = "0.0.0.0"
port = "8080"
concurrency = 16
request_timeout = "10s"
enable_mock = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected Host from file, got %s", cfg.Host)
	}
	if cfg.Port != "7070" {
		t.Errorf("Expected environment to override file port, got %s", cfg.Port)
	}
	if cfg.Concurrency != 16 || cfg.RequestTimeout != 10*time.Second {
		t.Errorf("Expected file values, got concurrency %d timeout %s", cfg.Concurrency, cfg.RequestTimeout)
	}
	if !cfg.EnableMock {
		t.Error("Expected mock provider enabled from file")
	}
	if cfg.DBPath != constants.DefaultDBPath {
		t.Errorf("Expected unset keys to keep defaults, got %s", cfg.DBPath)
	}
}

func TestLoadFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meting.toml")
	if err := os.WriteFile(path, []byte(`search_limit = 5`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SearchLimit != 5 {
		t.Errorf("Expected SearchLimit 5, got %d", cfg.SearchLimit)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`port = [`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"invalid port - not a number", func(c *Config) { c.Port = "abc" }, true},
		{"invalid port - out of range", func(c *Config) { c.Port = "99999" }, true},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"empty host", func(c *Config) { c.Host = "" }, true},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "invalid" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, true},
		{"retry too large", func(c *Config) { c.PlaylistRetry = 256 }, true},
		{"negative retry", func(c *Config) { c.PlaylistRetry = -1 }, true},
		{"max retry", func(c *Config) { c.PlaylistRetry = 255 }, false},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, true},
		{"zero search limit", func(c *Config) { c.SearchLimit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Port = ""
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "PORT") || !strings.Contains(err.Error(), "LOG_FORMAT") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	if value := getEnv("TEST_VAR", "default"); value != "test_value" {
		t.Errorf("Expected 'test_value', got '%s'", value)
	}
	if value := getEnv("NON_EXISTENT_VAR", "default"); value != "default" {
		t.Errorf("Expected 'default', got '%s'", value)
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Addr(); got != "127.0.0.1:5811" {
		t.Errorf("Addr() = %s, want 127.0.0.1:5811", got)
	}
}
