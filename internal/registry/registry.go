// Package registry maps component-type names to the factories that build
// configured component.Component instances. Registration happens once at
// startup; lookup during DAG build is read-only, so a plain
// sync.RWMutex-guarded map is enough — there is no persistence layer
// here.
package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
)

// Factory builds a configured Component from a raw JSON configuration
// document. A factory is total in the sense that it always returns: either
// a usable Component, or an error describing what was wrong with config.
type Factory func(config json.RawMessage) (component.Component, error)

// Registry is a read-mostly mapping from component-type name to Factory.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under componentType. Registering the same type
// twice is a caller bug, not a runtime condition — it returns an error so
// callers building a Registry at startup can fail fast instead of silently
// shadowing an earlier registration.
func (r *Registry) Register(componentType string, f Factory) error {
	if componentType == "" {
		return fmt.Errorf("registry: component type must not be empty")
	}
	if f == nil {
		return fmt.Errorf("registry: nil factory for component type %q", componentType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[componentType]; exists {
		return fmt.Errorf("registry: component type %q already registered", componentType)
	}
	r.factories[componentType] = f
	return nil
}

// MustRegister is Register, panicking on error. Intended for package-level
// init-time registration of built-in components, where a duplicate or nil
// factory is a programming error that should fail immediately.
func (r *Registry) MustRegister(componentType string, f Factory) {
	if err := r.Register(componentType, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered for componentType, if any, without
// invoking it. The DAG builder calls the returned factory itself so it can
// distinguish "unknown type" (dagerrors.UnknownComponent) from "factory
// returned an error" (dagerrors.InvalidConfiguration) at the call site,
// keeping this package independent of the error taxonomy.
func (r *Registry) Lookup(componentType string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[componentType]
	return f, ok
}

// Types returns the registered component-type names, in no particular
// order, for diagnostics.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	return out
}
