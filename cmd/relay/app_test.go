package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/relay/internal/config"
	"github.com/toyz/relay/pkg/relay"
	"go.uber.org/fx"
)

func TestOptions_Validate(t *testing.T) {
	for _, adapter := range config.Adapters {
		t.Run(adapter, func(t *testing.T) {
			cfg := config.Default()
			cfg.Adapter = adapter
			assert.NoError(t, fx.ValidateApp(options(cfg, io.Discard)))
		})
	}
}

func TestNewServer(t *testing.T) {
	expected := map[string]string{"echo": "Echo", "gin": "Gin", "fiber": "Fiber"}
	for adapter, name := range expected {
		cfg := config.Default()
		cfg.Adapter = adapter
		server, err := newServer(cfg)
		require.NoError(t, err)
		assert.Equal(t, name, server.Name())
	}

	cfg := config.Default()
	cfg.Adapter = "chi"
	_, err := newServer(cfg)
	assert.Error(t, err)
}

func TestLoadRoutes(t *testing.T) {
	table, err := loadRoutes(config.Default())
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	path := filepath.Join(t.TempDir(), "routes.yaml")
	doc := "routes:\n  - path: /posts/{post}\n    method: GET\n    controller: TestController\n    handler: GetPost\n    params: [\"post: entity Post\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg := config.Default()
	cfg.Manifest = path
	table, err = loadRoutes(cfg)
	require.NoError(t, err)
	_, ok := table.Lookup("GET", "/posts/{post}")
	assert.True(t, ok)

	cfg.Manifest = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = loadRoutes(cfg)
	assert.Error(t, err)
}

func TestApp_ServesDemoRoutes(t *testing.T) {
	var logs bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "debug"

	var server relay.WebServer
	app := fx.New(options(cfg, &logs), fx.Populate(&server))
	require.NoError(t, app.Err())

	handler, ok := server.(http.Handler)
	require.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/test/string?str=hi&girl=1", nil)
	req.Header.Set(relay.RequestIDHeader, "trace-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "trace-1", rec.Header().Get(relay.RequestIDHeader))
	assert.Contains(t, logs.String(), "mounted route")
}
