package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Dispatcher resolves a route's arguments and invokes its handler. It holds
// no per-request state and may serve concurrent requests.
type Dispatcher struct {
	literal Strategy
	entity  Strategy
	model   Strategy
	service Strategy
	logger  *slog.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithEntities sets the store used by the entity strategy
func WithEntities(store EntityStore) Option {
	return func(d *Dispatcher) { d.entity = EntityStrategy{Entities: store} }
}

// WithModels sets the registry used by the model strategy
func WithModels(models *ModelRegistry) Option {
	return func(d *Dispatcher) { d.model = ModelStrategy{Models: models} }
}

// WithServices sets the container used by the service strategy
func WithServices(services ServiceContainer) Option {
	return func(d *Dispatcher) { d.service = ServiceStrategy{Services: services} }
}

// WithStrategy replaces the strategy used for a parameter kind
func WithStrategy(kind ParamKind, s Strategy) Option {
	return func(d *Dispatcher) {
		switch kind {
		case LiteralParam:
			d.literal = s
		case EntityParam:
			d.entity = s
		case ModelParam:
			d.model = s
		}
	}
}

// WithServiceStrategy replaces the fallback strategy for parameters without a spec
func WithServiceStrategy(s Strategy) Option {
	return func(d *Dispatcher) { d.service = s }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a dispatcher. Collaborators left unset make the
// corresponding strategy fail with its typed error.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		literal: LiteralStrategy{},
		entity:  EntityStrategy{},
		model:   ModelStrategy{},
		service: ServiceStrategy{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve builds the route's arguments in declaration order, stopping at the
// first failing parameter
func (d *Dispatcher) Resolve(ctx context.Context, route RouteDescriptor, src ParamSource) (Arguments, error) {
	args := newArguments(len(route.Params))

	for _, param := range route.Params {
		in := Resolution{Param: param}
		in.Spec, in.HasSpec = route.Spec(param.Name)
		in.Raw, in.Present = lookup(src, param.Name)

		value, err := d.strategyFor(in).Resolve(ctx, in)
		if err != nil {
			return Arguments{}, err
		}
		args.add(param.Name, value)
	}
	return args, nil
}

func (d *Dispatcher) strategyFor(in Resolution) Strategy {
	if !in.HasSpec {
		return d.service
	}
	switch in.Spec.Kind {
	case LiteralParam:
		return d.literal
	case EntityParam:
		return d.entity
	case ModelParam:
		return d.model
	default:
		return StrategyFunc(func(context.Context, Resolution) (any, error) {
			return nil, fmt.Errorf("parameter %s has unknown kind %d", in.Param.Name, in.Spec.Kind)
		})
	}
}

// Dispatch resolves the arguments and calls the handler on a fresh
// controller. Resolution failures come back as *RoutingError; the handler's
// own result and error are returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, route RouteDescriptor, src ParamSource) (any, error) {
	args, err := d.Resolve(ctx, route, src)
	if err != nil {
		d.logger.DebugContext(ctx, "parameter resolution failed",
			slog.String("route", route.Key()),
			slog.String("handler", route.Name()),
			slog.String("error", err.Error()),
			slog.String("cause", causeOf(err)),
		)
		return nil, NewRoutingError(err)
	}

	var controller any
	if route.Controller != nil {
		controller = route.Controller()
	}
	if route.Handler == nil {
		return nil, fmt.Errorf("route %s has no handler", route.Key())
	}
	return route.Handler(ctx, controller, args)
}

func causeOf(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return ""
}
