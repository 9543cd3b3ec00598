package relay

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// DeclaredParam is one parameter of a handler signature: its name and the
// identifier of its static type
type DeclaredParam struct {
	Name string
	Type string
}

// ControllerFactory builds a fresh controller for a single request
type ControllerFactory func() any

// Handler invokes a controller method with the resolved arguments
type Handler func(ctx context.Context, controller any, args Arguments) (any, error)

// Method adapts a method expression such as (*UserController).Show to a Handler
func Method[C any](fn func(C, context.Context, Arguments) (any, error)) Handler {
	return func(ctx context.Context, controller any, args Arguments) (any, error) {
		c, ok := controller.(C)
		if !ok {
			var want C
			return nil, fmt.Errorf("controller %T does not match handler receiver %T", controller, want)
		}
		return fn(c, ctx, args)
	}
}

// RouteDescriptor describes one endpoint. Params fixes the argument order;
// Specs selects the strategy per parameter name, and a parameter without a
// spec is resolved from the service container.
type RouteDescriptor struct {
	// Path is the route pattern, e.g. "/users/{id}"
	Path string

	// Method is the HTTP method
	Method string

	// ControllerType identifies the controller owning the handler
	ControllerType string

	// HandlerName is the name of the handler method
	HandlerName string

	// Params are the handler's declared parameters in signature order
	Params []DeclaredParam

	// Specs maps parameter names to their resolution specs
	Specs map[string]ParameterSpec

	// Controller builds the controller instance for each request
	Controller ControllerFactory

	// Handler calls the handler method
	Handler Handler
}

// Spec returns the parameter spec registered for name
func (d RouteDescriptor) Spec(name string) (ParameterSpec, bool) {
	s, ok := d.Specs[name]
	return s, ok
}

// Key returns the transport lookup key "METHOD path"
func (d RouteDescriptor) Key() string {
	return d.Method + " " + d.Path
}

// Name returns "Controller.Handler"
func (d RouteDescriptor) Name() string {
	return d.ControllerType + "." + d.HandlerName
}

// clone copies the slice and map so the caller's values can't alias
// registered state
func (d RouteDescriptor) clone() RouteDescriptor {
	d.Params = slices.Clone(d.Params)
	if d.Specs != nil {
		d.Specs = maps.Clone(d.Specs)
	}
	return d
}

// Arguments is the ordered list of values resolved for one request
type Arguments struct {
	names  []string
	values []any
}

func newArguments(capacity int) Arguments {
	return Arguments{
		names:  make([]string, 0, capacity),
		values: make([]any, 0, capacity),
	}
}

func (a *Arguments) add(name string, value any) {
	a.names = append(a.names, name)
	a.values = append(a.values, value)
}

// Len returns the number of resolved arguments
func (a Arguments) Len() int {
	return len(a.values)
}

// At returns the argument at position i
func (a Arguments) At(i int) any {
	return a.values[i]
}

// Get returns the argument resolved for the named parameter
func (a Arguments) Get(name string) (any, bool) {
	for i, n := range a.names {
		if n == name {
			return a.values[i], true
		}
	}
	return nil, false
}

// Names returns the parameter names in declaration order
func (a Arguments) Names() []string {
	return slices.Clone(a.names)
}

// Values returns the resolved values in declaration order
func (a Arguments) Values() []any {
	return slices.Clone(a.values)
}

// ArgAs returns the named argument converted to T
func ArgAs[T any](args Arguments, name string) (T, error) {
	var zero T
	v, ok := args.Get(name)
	if !ok {
		return zero, fmt.Errorf("argument %q was not resolved", name)
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("argument %q is %T, not %T", name, v, zero)
	}
	return t, nil
}
