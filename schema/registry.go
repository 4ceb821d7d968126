package schema

import (
	"fmt"
	"sync"
)

// Registry maps type names to product and sum shapes.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Named
}

func NewRegistry() *Registry {
	return &Registry{types: map[string]Named{}}
}

var defaultRegistry = NewRegistry()

// Default returns the process wide registry used by Register and Lookup.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a named shape.
func (r *Registry) Register(s Named) error {
	if s == nil {
		return fmt.Errorf("cannot register nil shape")
	}
	if s.TypeName() == "" {
		return fmt.Errorf("shape must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[s.TypeName()]; exists {
		return fmt.Errorf("shape %q already registered", s.TypeName())
	}
	r.types[s.TypeName()] = s
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(s Named) {
	if err := r.Register(s); err != nil {
		panic("schema: " + err.Error())
	}
}

// Lookup looks up a shape by name
func (r *Registry) Lookup(name string) Named {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[name]
}

// Ref refers to the shape registered under name, resolved when used. It
// allows recursive types.
func (r *Registry) Ref(name string) *RefShape {
	return &RefShape{Name: name, reg: r}
}

// All returns all registered shapes
func (r *Registry) All() map[string]Named {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Named, len(r.types))
	for k, v := range r.types {
		result[k] = v
	}
	return result
}

func Register(s Named) error  { return defaultRegistry.Register(s) }
func MustRegister(s Named)    { defaultRegistry.MustRegister(s) }
func Lookup(name string) Named { return defaultRegistry.Lookup(name) }
func Ref(name string) *RefShape {
	return defaultRegistry.Ref(name)
}

// RefShape is a reference to a registered shape.
type RefShape struct {
	Name string
	reg  *Registry
}

func (r *RefShape) String() string { return r.Name }

// Resolve returns the referenced shape.
func (r *RefShape) Resolve() (Named, error) {
	s := r.reg.Lookup(r.Name)
	if s == nil {
		return nil, fmt.Errorf("unknown shape %q", r.Name)
	}
	return s, nil
}
