package relay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// ServiceContainer provides service instances by type identifier
type ServiceContainer interface {
	Resolve(ctx context.Context, typeID string) (any, error)
}

// Lifetime controls how often a factory runs
type Lifetime int

const (
	// Singleton builds the instance once and shares it
	Singleton Lifetime = iota
	// Transient builds a new instance on every resolve
	Transient
)

// String returns the string representation of the lifetime
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "Singleton"
	case Transient:
		return "Transient"
	default:
		return "unknown"
	}
}

// Factory builds a service. The container is passed so factories can resolve
// their own dependencies with the same context.
type Factory func(ctx context.Context, c *Container) (any, error)

var (
	// ErrServiceNotRegistered is returned for type identifiers without a factory
	ErrServiceNotRegistered = errors.New("service not registered")
	// ErrServiceCycle is returned when factories depend on each other in a loop
	ErrServiceCycle = errors.New("service dependency cycle")
)

type provider struct {
	lifetime Lifetime
	factory  Factory

	once     sync.Once
	built    atomic.Bool
	instance any
	err      error
}

// Container is a typed service registry keyed by identifier, each bound to
// an explicit factory. It is safe for concurrent use. Singletons are built
// one graph at a time so a cycle is reported on the resolving goroutine
// instead of blocking two builders on each other.
type Container struct {
	mu        sync.RWMutex
	buildMu   sync.Mutex
	providers map[string]*provider
}

// NewContainer creates an empty container
func NewContainer() *Container {
	return &Container{providers: make(map[string]*provider)}
}

// Provide registers a factory for typeID
func (c *Container) Provide(typeID string, lifetime Lifetime, factory Factory) error {
	if typeID == "" {
		return errors.New("service type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("service %s has no factory", typeID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.providers[typeID]; exists {
		return fmt.Errorf("service %s is already registered", typeID)
	}
	c.providers[typeID] = &provider{lifetime: lifetime, factory: factory}
	return nil
}

// Instance registers an already built singleton
func (c *Container) Instance(typeID string, instance any) error {
	return c.Provide(typeID, Singleton, func(context.Context, *Container) (any, error) {
		return instance, nil
	})
}

// Has reports whether typeID has a factory
func (c *Container) Has(typeID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.providers[typeID]
	return ok
}

// Types returns the registered type identifiers in sorted order
func (c *Container) Types() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	types := make([]string, 0, len(c.providers))
	for t := range c.providers {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

type (
	resolvingKey struct{}
	buildingKey  struct{}
)

// Resolve implements ServiceContainer. A failed singleton factory is not
// retried; the error is returned on every resolve.
func (c *Container) Resolve(ctx context.Context, typeID string) (any, error) {
	c.mu.RLock()
	p, ok := c.providers[typeID]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotRegistered, typeID)
	}

	chain, _ := ctx.Value(resolvingKey{}).([]string)
	if slices.Contains(chain, typeID) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrServiceCycle, strings.Join(chain, " -> "), typeID)
	}
	ctx = context.WithValue(ctx, resolvingKey{}, append(slices.Clip(chain), typeID))

	if p.lifetime == Transient {
		return c.build(ctx, typeID, p)
	}
	if !p.built.Load() && ctx.Value(buildingKey{}) == nil {
		c.buildMu.Lock()
		defer c.buildMu.Unlock()
		ctx = context.WithValue(ctx, buildingKey{}, true)
	}
	p.once.Do(func() {
		p.instance, p.err = c.build(ctx, typeID, p)
		p.built.Store(true)
	})
	return p.instance, p.err
}

func (c *Container) build(ctx context.Context, typeID string, p *provider) (any, error) {
	instance, err := p.factory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", typeID, err)
	}
	return instance, nil
}

// ResolveAs resolves typeID and asserts the instance to T
func ResolveAs[T any](ctx context.Context, c ServiceContainer, typeID string) (T, error) {
	var zero T
	v, err := c.Resolve(ctx, typeID)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("service %s is %T, not %T", typeID, v, zero)
	}
	return t, nil
}
