// Package demo wires a sample controller, its entities, models and
// services into a relay route table.
package demo

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/toyz/relay/internal/manifest"
	"github.com/toyz/relay/pkg/relay"
	"go.uber.org/fx"
)

//go:embed routes.yaml
var routesYAML []byte

// Manifest returns the embedded route manifest
func Manifest() (*manifest.Manifest, error) {
	return manifest.Parse(routesYAML)
}

// NewRouteTable builds the route table from m, or from the embedded
// manifest when m is nil
func NewRouteTable(m *manifest.Manifest) (*relay.RouteTable, error) {
	if m == nil {
		var err error
		if m, err = Manifest(); err != nil {
			return nil, err
		}
	}
	table := relay.NewRouteTable()
	if err := manifest.Build(m, Bindings(), table); err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}
	return table, nil
}

// NewDispatcher wires the demo collaborators into a dispatcher
func NewDispatcher(entities *relay.Entities, models *relay.ModelRegistry, services *relay.Container, logger *slog.Logger) *relay.Dispatcher {
	return relay.NewDispatcher(
		relay.WithEntities(entities),
		relay.WithModels(models),
		relay.WithServices(services),
		relay.WithLogger(logger),
	)
}

// Module provides the dispatcher and its collaborators. It expects a
// *slog.Logger in the graph.
var Module = fx.Module("demo",
	fx.Provide(
		NewRepositories,
		NewEntities,
		NewModels,
		NewServices,
		NewDispatcher,
	),
)
