package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cesargomez89/meting-gateway/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Host           string        `toml:"host"`
	Port           string        `toml:"port"`
	DBPath         string        `toml:"db_path"`
	LogLevel       string        `toml:"log_level"`
	LogFormat      string        `toml:"log_format"`
	Concurrency    int64         `toml:"concurrency"`
	PlaylistRetry  int           `toml:"playlist_retry"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	RateLimit      float64       `toml:"rate_limit"`
	RandomIP       bool          `toml:"random_ip"`
	SearchLimit    uint          `toml:"search_limit"`
	EnableMock     bool          `toml:"enable_mock"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Host:           constants.DefaultHost,
		Port:           constants.DefaultPort,
		DBPath:         constants.DefaultDBPath,
		LogLevel:       "info",
		LogFormat:      "text",
		Concurrency:    constants.DefaultConcurrency,
		PlaylistRetry:  constants.DefaultPlaylistRetry,
		RequestTimeout: constants.DefaultRequestTimeout,
		RateLimit:      constants.DefaultRateLimit,
		SearchLimit:    constants.DefaultSearchLimit,
	}
}

// Load builds the configuration from defaults, then the optional TOML file at
// path, then environment variables. Later sources win.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	var errs []string
	parse := func(key string, apply func(string) error) {
		value, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		if err := apply(value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}

	c.Host = getEnv("HOST", c.Host)
	c.Port = getEnv("PORT", c.Port)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	parse("CONCURRENCY", func(v string) (err error) {
		c.Concurrency, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	parse("PLAYLIST_RETRY", func(v string) (err error) {
		c.PlaylistRetry, err = strconv.Atoi(v)
		return err
	})
	parse("REQUEST_TIMEOUT", func(v string) (err error) {
		c.RequestTimeout, err = time.ParseDuration(v)
		return err
	})
	parse("RATE_LIMIT", func(v string) (err error) {
		c.RateLimit, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("RANDOM_IP", func(v string) (err error) {
		c.RandomIP, err = strconv.ParseBool(v)
		return err
	})
	parse("SEARCH_LIMIT", func(v string) error {
		n, err := strconv.ParseUint(v, 10, 0)
		c.SearchLimit = uint(n)
		return err
	})
	parse("ENABLE_MOCK", func(v string) (err error) {
		c.EnableMock, err = strconv.ParseBool(v)
		return err
	})

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Host == "" {
		errors = append(errors, "HOST cannot be empty")
	}

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if c.Concurrency < 1 {
		errors = append(errors, fmt.Sprintf("CONCURRENCY must be at least 1, got: %d", c.Concurrency))
	}

	if c.PlaylistRetry < 0 || c.PlaylistRetry > constants.MaxPlaylistRetry {
		errors = append(errors, fmt.Sprintf("PLAYLIST_RETRY must be between 0 and %d, got: %d", constants.MaxPlaylistRetry, c.PlaylistRetry))
	}

	if c.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got: %s", c.RequestTimeout))
	}

	if c.RateLimit < 0 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT cannot be negative, got: %g", c.RateLimit))
	}

	if c.SearchLimit < 1 {
		errors = append(errors, "SEARCH_LIMIT must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
