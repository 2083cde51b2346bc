package widgets

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry maps widget type keys to their renderer registrations. Keys are
// canonicalised, so " Hero " and "hero" address the same entry.
type Registry struct {
	mu            sync.RWMutex
	registrations map[string]Registration
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]Registration),
	}
}

// Register stores registration under key, replacing any previous entry.
func (r *Registry) Register(key string, registration Registration) error {
	name := canonicalKey(key)
	if name == "" {
		return ErrTypeRequired
	}
	if registration.Renderer == nil {
		return ErrRendererRequired
	}
	registration.Bindings = maps.Clone(registration.Bindings)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.registrations == nil {
		r.registrations = make(map[string]Registration)
	}
	r.registrations[name] = registration
	return nil
}

// RegisterFunc registers fn with the given bindings.
func (r *Registry) RegisterFunc(key string, fn RendererFunc, bindings map[string]Slice) error {
	if fn == nil {
		return ErrRendererRequired
	}
	return r.Register(key, Registration{Renderer: fn, Bindings: bindings})
}

// Lookup resolves the registration for a widget type.
func (r *Registry) Lookup(key string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	registration, ok := r.registrations[canonicalKey(key)]
	return registration, ok
}

// Types returns the registered type keys in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.registrations))
}

func canonicalKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
