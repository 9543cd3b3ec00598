package relay

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// EntityRepository loads entities of one type by integer id
type EntityRepository interface {
	Find(ctx context.Context, id int) (entity any, ok bool, err error)
}

// EntityStore returns the repository for an entity type
type EntityStore interface {
	Repository(entityType string) (EntityRepository, bool)
}

// Entities is an EntityStore keyed by entity type identifier
type Entities struct {
	mu    sync.RWMutex
	repos map[string]EntityRepository
}

// NewEntities creates an empty entity store
func NewEntities() *Entities {
	return &Entities{repos: make(map[string]EntityRepository)}
}

// Register binds a repository to an entity type, replacing any previous one
func (e *Entities) Register(entityType string, repo EntityRepository) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.repos[entityType] = repo
}

// Repository implements EntityStore
func (e *Entities) Repository(entityType string) (EntityRepository, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	repo, ok := e.repos[entityType]
	return repo, ok
}

// MemoryRepository is a concurrency-safe in-memory EntityRepository
type MemoryRepository[T any] struct {
	mu    sync.RWMutex
	items map[int]T
}

// NewMemoryRepository creates a repository seeded with items
func NewMemoryRepository[T any](items map[int]T) *MemoryRepository[T] {
	r := &MemoryRepository[T]{items: make(map[int]T, len(items))}
	for id, item := range items {
		r.items[id] = item
	}
	return r
}

// Find implements EntityRepository
func (r *MemoryRepository[T]) Find(_ context.Context, id int) (any, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, false, nil
	}
	return item, true, nil
}

// Get returns the typed entity stored under id
func (r *MemoryRepository[T]) Get(id int) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok
}

// Put stores item under id
func (r *MemoryRepository[T]) Put(id int, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = item
}

// Delete removes the entity stored under id
func (r *MemoryRepository[T]) Delete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// All returns the stored entities ordered by id
func (r *MemoryRepository[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(r.items))
	items := make([]T, 0, len(ids))
	for _, id := range ids {
		items = append(items, r.items[id])
	}
	return items
}

// Len returns the number of stored entities
func (r *MemoryRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
