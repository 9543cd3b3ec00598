package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/toyz/relay/internal/config"
	"github.com/toyz/relay/internal/demo"
	"github.com/toyz/relay/internal/logging"
	"github.com/toyz/relay/internal/manifest"
	"github.com/toyz/relay/pkg/relay"
	"github.com/toyz/relay/pkg/relay/adapters"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// newServer returns the adapter named by the configuration
func newServer(cfg *config.Config) (relay.WebServer, error) {
	switch cfg.Adapter {
	case "echo":
		return adapters.NewDefaultEchoAdapter(), nil
	case "gin":
		return adapters.NewDefaultGinAdapter(), nil
	case "fiber":
		return adapters.NewDefaultFiberAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", cfg.Adapter)
	}
}

// loadRoutes builds the route table from the configured manifest file, or
// from the embedded demo manifest
func loadRoutes(cfg *config.Config) (*relay.RouteTable, error) {
	if cfg.Manifest == "" {
		return demo.NewRouteTable(nil)
	}
	m, err := manifest.LoadFile(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	return demo.NewRouteTable(m)
}

// options composes the application
func options(cfg *config.Config, logOutput io.Writer) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			func(cfg *config.Config) *slog.Logger { return logging.NewLogger(cfg, logOutput) },
			newServer,
			loadRoutes,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
		demo.Module,
		fx.Invoke(registerServer),
	)
}

// registerServer mounts the routes and ties the server to the app lifecycle
func registerServer(lc fx.Lifecycle, cfg *config.Config, server relay.WebServer, table *relay.RouteTable, dispatcher *relay.Dispatcher, logger *slog.Logger) {
	server.Use(relay.RequestID())
	endpoints := relay.Mount(server, table, dispatcher, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting server",
				slog.String("adapter", server.Name()),
				slog.String("addr", cfg.Addr()),
				slog.Int("routes", len(endpoints)),
			)
			go func() {
				if err := server.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server", slog.String("adapter", server.Name()))
			return server.Stop(ctx)
		},
	})
}
