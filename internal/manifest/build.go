package manifest

import (
	"fmt"
	"slices"

	"github.com/toyz/relay/pkg/relay"
)

// HandlerBinding describes one controller method: its declared parameters
// in signature order and the function invoking it
type HandlerBinding struct {
	Params  []relay.DeclaredParam
	Handler relay.Handler
}

// ControllerBinding makes a controller addressable from a manifest
type ControllerBinding struct {
	New      relay.ControllerFactory
	Handlers map[string]HandlerBinding
}

// Bindings maps controller type identifiers to their bindings
type Bindings map[string]ControllerBinding

// Build resolves every manifest route against the bindings and registers
// the resulting descriptors on table in document order. Parameter
// declarations must name a parameter of the handler.
func Build(m *Manifest, bindings Bindings, table *relay.RouteTable) error {
	for i, r := range m.Routes {
		route, err := Descriptor(r, bindings)
		if err != nil {
			return fmt.Errorf("route %d (%s): %w", i, r.Key(), err)
		}
		if err := table.Register(route); err != nil {
			return fmt.Errorf("route %d (%s): %w", i, r.Key(), err)
		}
	}
	return nil
}

// Descriptor builds the descriptor of a single manifest route
func Descriptor(r Route, bindings Bindings) (relay.RouteDescriptor, error) {
	controller, ok := bindings[r.Controller]
	if !ok {
		return relay.RouteDescriptor{}, fmt.Errorf("unknown controller %s", r.Controller)
	}
	handler, ok := controller.Handlers[r.Handler]
	if !ok {
		return relay.RouteDescriptor{}, fmt.Errorf("controller %s has no handler %s", r.Controller, r.Handler)
	}
	if handler.Handler == nil {
		return relay.RouteDescriptor{}, fmt.Errorf("handler %s.%s is not bound", r.Controller, r.Handler)
	}

	specs, err := ParseParams(r.Params)
	if err != nil {
		return relay.RouteDescriptor{}, err
	}
	for _, spec := range specs {
		declared := slices.ContainsFunc(handler.Params, func(p relay.DeclaredParam) bool {
			return p.Name == spec.Name
		})
		if !declared {
			return relay.RouteDescriptor{}, fmt.Errorf("handler %s.%s has no parameter %s", r.Controller, r.Handler, spec.Name)
		}
	}

	return relay.RouteDescriptor{
		Path:           r.Path,
		Method:         r.Method,
		ControllerType: r.Controller,
		HandlerName:    r.Handler,
		Params:         handler.Params,
		Specs:          relay.Specs(specs...),
		Controller:     controller.New,
		Handler:        handler.Handler,
	}, nil
}
