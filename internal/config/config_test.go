package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Environment(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"PORT":                   "3000",
		"RELAY_ADAPTER":          "Fiber",
		"RELAY_LOG_LEVEL":        "debug",
		"RELAY_LOG_FORMAT":       "json",
		"RELAY_MANIFEST":         "routes.yaml",
		"RELAY_SHUTDOWN_TIMEOUT": "5s",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "fiber", cfg.Adapter)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "routes.yaml", cfg.Manifest)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port not a number", env: map[string]string{"PORT": "http"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "unknown adapter", env: map[string]string{"RELAY_ADAPTER": "chi"}},
		{name: "unknown log format", env: map[string]string{"RELAY_LOG_FORMAT": "xml"}},
		{name: "unknown log level", env: map[string]string{"RELAY_LOG_LEVEL": "trace"}},
		{name: "bad timeout", env: map[string]string{"RELAY_SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RELAY_ADAPTER", "gin")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gin", cfg.Adapter)
}
