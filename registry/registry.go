package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/port"
)

// Calculator is one registered implementation: the factory for its
// contract shape plus its registration-time capability declarations.
type Calculator struct {
	// NewContract returns a fresh contract shape (pointer to struct of
	// port declarations). Required.
	NewContract func() any
	// UpdateSpec is the implementation-level contract customization hook,
	// run after the shape's own UpdateSpec.
	UpdateSpec port.SpecHook
	// TimestampOffset declares a fixed output timestamp offset.
	TimestampOffset *int64
	// InputStreamHandler assigns the engine-side stream handler.
	InputStreamHandler *engine.StreamHandler
	// ServiceKeys lists the capability services the node needs at runtime.
	ServiceKeys []string
}

// Module is a cohesive group of calculator registrations, typically one
// per Go package of implementations.
type Module interface {
	Register(r *Registry)
}

// Registry maps calculator names to their contract shapes and
// capabilities for a single application instance.
type Registry struct {
	calculators map[string]*Calculator
	order       []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{calculators: make(map[string]*Calculator)}
}

// Register adds a calculator under its registration name. Registering the
// same name twice, or a calculator without a contract factory, is a
// programmer error.
func (r *Registry) Register(name string, c *Calculator) {
	if name == "" {
		panic("registry: calculator name is empty")
	}
	if c == nil || c.NewContract == nil {
		panic(fmt.Sprintf("registry: calculator %q has no contract factory", name))
	}
	if _, exists := r.calculators[name]; exists {
		panic(fmt.Sprintf("calculator with name '%s' already registered", name))
	}
	slog.Debug("Registering calculator.", "name", name)
	r.calculators[name] = c
	r.order = append(r.order, name)
}

// Lookup returns the calculator registered under name.
func (r *Registry) Lookup(name string) (*Calculator, bool) {
	c, ok := r.calculators[name]
	return c, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// BuildSpec runs the full contract build for a registered calculator: a
// fresh shape is bound to a new raw contract, capabilities are applied,
// both customization hooks run, and same-as constraints are resolved.
func (r *Registry) BuildSpec(name string) (*engine.ContractSpec, error) {
	c, ok := r.calculators[name]
	if !ok {
		return nil, fmt.Errorf("registry: no calculator registered under %q", name)
	}
	spec := engine.NewContractSpec(name)
	if c.TimestampOffset != nil {
		spec.SetTimestampOffset(*c.TimestampOffset)
	}
	if c.InputStreamHandler != nil {
		spec.SetInputStreamHandler(c.InputStreamHandler.Name, c.InputStreamHandler.Options)
	}
	for _, key := range c.ServiceKeys {
		spec.RequireService(key)
	}

	var hooks []port.SpecHook
	if c.UpdateSpec != nil {
		hooks = append(hooks, c.UpdateSpec)
	}
	if _, err := port.BindSpec(c.NewContract(), spec, hooks...); err != nil {
		return nil, err
	}
	if err := spec.Resolve(); err != nil {
		return nil, err
	}
	return spec, nil
}
