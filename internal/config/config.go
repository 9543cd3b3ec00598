package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Adapters lists the supported web frameworks
var Adapters = []string{"echo", "gin", "fiber"}

// Config holds application configuration
type Config struct {
	Port            int           `json:"port"`
	Adapter         string        `json:"adapter"`
	LogLevel        string        `json:"log_level"`
	LogFormat       string        `json:"log_format"`
	Manifest        string        `json:"manifest"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Port:            8080,
		Adapter:         "echo",
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 30 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := getenv("PORT"); v != "" {
		port, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := getenv("RELAY_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return nil, fmt.Errorf("RELAY_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	cfg.Adapter = getEnvOrDefault(getenv, "RELAY_ADAPTER", cfg.Adapter)
	cfg.LogLevel = getEnvOrDefault(getenv, "RELAY_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault(getenv, "RELAY_LOG_FORMAT", cfg.LogFormat)
	cfg.Manifest = getenv("RELAY_MANIFEST")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	c.Adapter = strings.ToLower(c.Adapter)
	if !slices.Contains(Adapters, c.Adapter) {
		return fmt.Errorf("invalid adapter %q: must be one of %s", c.Adapter, strings.Join(Adapters, ", "))
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnvOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}
