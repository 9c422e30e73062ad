package enumdef

import (
	"fmt"
	"sync"
)

// Registry holds definitions in registration order. It is safe for
// concurrent use; reads hand out copies so callers cannot disturb it.
type Registry struct {
	mu      sync.RWMutex
	defs    []*Definition
	byTable map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byTable: make(map[string]struct{})}
}

// Register adds a definition. Two definitions may not claim the same table.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("cannot register a nil definition")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byTable[def.Table()]; taken {
		return fmt.Errorf("enum table %s is already registered", def.Table())
	}
	r.byTable[def.Table()] = struct{}{}
	r.defs = append(r.defs, def)
	return nil
}

// MustRegister panics when registration fails. Intended for package init
// blocks where a clash is a programming error.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// All returns the registered definitions in registration order.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Reset drops every registration. Used between test cases.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = nil
	r.byTable = make(map[string]struct{})
}

// defaultRegistry backs the package-level registration API.
var defaultRegistry = NewRegistry()

// Register adds a definition to the default registry.
func Register(def *Definition) error {
	return defaultRegistry.Register(def)
}

// MustRegister adds a definition to the default registry, panicking on error.
func MustRegister(def *Definition) {
	defaultRegistry.MustRegister(def)
}

// Definitions returns the default registry's definitions in order.
func Definitions() []*Definition {
	return defaultRegistry.All()
}

// Reset drops every registration from the default registry. Used between
// test cases.
func Reset() {
	defaultRegistry.Reset()
}
