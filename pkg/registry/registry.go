// Package registry maps identifiers to adapter instances.
//
// A Registry remembers registration order: Infer walks adapters in the order
// their ids were first registered and returns the first whose AdaptsTo
// reports true. Re-registering an id replaces the adapter in place (last
// write wins) without moving it in the order.
//
// Default returns the process-wide registry used when no registry is
// supplied explicitly. New code can carry its own Registry through a
// context.Context with NewContext.
package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/roach88/rpath/pkg/adapter"
)

// ID identifies a registered adapter.
type ID string

// Registry maps ids to adapters. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	order    []ID
	adapters map[ID]adapter.Adapter
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		adapters: make(map[ID]adapter.Adapter),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Register stores a under id. If id is empty, DefaultID(a) is used.
// Registering an existing id overwrites the previous adapter.
// Returns the id the adapter was stored under, or "" when a is nil and
// nothing was stored.
func (r *Registry) Register(a adapter.Adapter, id ID) ID {
	if a == nil {
		slog.Debug("ignoring nil adapter", "id", id)
		return ""
	}
	if id == "" {
		id = DefaultID(a)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.adapters[id]
	if !replaced {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a

	slog.Debug("registering adapter", "id", id, "type", fmt.Sprintf("%T", a), "replaced", replaced)
	return id
}

// Find returns the adapter registered under id, or nil.
func (r *Registry) Find(id ID) adapter.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[id]
}

// Infer returns the first adapter, in registration order, whose AdaptsTo
// reports true for graph. Returns nil if none match.
func (r *Registry) Infer(graph any) adapter.Adapter {
	r.mu.RLock()
	candidates := make([]adapter.Adapter, 0, len(r.order))
	for _, id := range r.order {
		candidates = append(candidates, r.adapters[id])
	}
	r.mu.RUnlock()

	// AdaptsTo is called without holding the lock.
	for _, a := range candidates {
		if a.AdaptsTo(graph) {
			return a
		}
	}
	return nil
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Clear unregisters all adapters.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.adapters = make(map[ID]adapter.Adapter)
	slog.Debug("registry cleared")
}

// DefaultID derives an id from the adapter's type name, without package
// qualifier or pointer indirection, converted to snake_case.
func DefaultID(a adapter.Adapter) ID {
	t := reflect.TypeOf(a)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return ID(Underscore(t.Name()))
}
