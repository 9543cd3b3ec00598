package relay

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrTableFrozen is returned when registering on a table that is already serving
var ErrTableFrozen = errors.New("route table is frozen")

// RouteTable is the append-only collection of routes built at startup.
// Registration is single-threaded; after Freeze the table is read-only and
// safe for concurrent readers without locking.
type RouteTable struct {
	mu     sync.Mutex
	frozen atomic.Bool
	routes []RouteDescriptor
}

// NewRouteTable creates an empty route table
func NewRouteTable() *RouteTable {
	return &RouteTable{
		routes: make([]RouteDescriptor, 0),
	}
}

// Register appends a copy of the descriptor. Duplicated method+path pairs are
// kept; Lookup and Mount honor the first registration.
func (t *RouteTable) Register(route RouteDescriptor) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen.Load() {
		return ErrTableFrozen
	}
	t.routes = append(t.routes, route.clone())
	return nil
}

// MustRegister is like Register but panics on a frozen table
func (t *RouteTable) MustRegister(routes ...RouteDescriptor) {
	for _, r := range routes {
		if err := t.Register(r); err != nil {
			panic(err)
		}
	}
}

// Freeze ends the registration phase
func (t *RouteTable) Freeze() {
	t.mu.Lock()
	t.frozen.Store(true)
	t.mu.Unlock()
}

// Frozen reports whether Freeze has been called
func (t *RouteTable) Frozen() bool {
	return t.frozen.Load()
}

// Len returns the number of registered routes
func (t *RouteTable) Len() int {
	return len(t.routes)
}

// All returns a copy of every route in registration order
func (t *RouteTable) All() []RouteDescriptor {
	return t.filter(func(RouteDescriptor) bool { return true })
}

// Lookup returns the first route registered for method and path
func (t *RouteTable) Lookup(method, path string) (RouteDescriptor, bool) {
	for _, route := range t.routes {
		if route.Method == method && route.Path == path {
			return route.clone(), true
		}
	}
	return RouteDescriptor{}, false
}

// Conflicts returns the routes shadowed by an earlier registration of the
// same method and path
func (t *RouteTable) Conflicts() []RouteDescriptor {
	seen := make(map[string]struct{}, len(t.routes))
	var shadowed []RouteDescriptor
	for _, route := range t.routes {
		key := route.Key()
		if _, dup := seen[key]; dup {
			shadowed = append(shadowed, route.clone())
			continue
		}
		seen[key] = struct{}{}
	}
	return shadowed
}

// ByController returns routes filtered by controller type
func (t *RouteTable) ByController(controllerType string) []RouteDescriptor {
	return t.filter(func(route RouteDescriptor) bool {
		return route.ControllerType == controllerType
	})
}

// ByMethod returns routes filtered by HTTP method
func (t *RouteTable) ByMethod(method string) []RouteDescriptor {
	return t.filter(func(route RouteDescriptor) bool {
		return route.Method == method
	})
}

// filter clones the matching routes so callers never share the table's
// parameter slices or spec maps
func (t *RouteTable) filter(match func(RouteDescriptor) bool) []RouteDescriptor {
	filtered := make([]RouteDescriptor, 0, len(t.routes))
	for _, route := range t.routes {
		if match(route) {
			filtered = append(filtered, route.clone())
		}
	}
	return filtered
}
