package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
)

// Repeated wraps a base port kind with 0..N cardinality. Indices are
// assigned densely from 0; At materializes the i-th underlying port
// lazily, in the active role. Wrapping another cardinality wrapper is a
// shape error.
type Repeated[P any] struct {
	bind      *binding
	proto     *P
	inner     Field
	ports     []*P
	addCursor int
}

func (r *Repeated[P]) isCardinalityWrapper() {}

func (r *Repeated[P]) init(tag string, bind *binding) error {
	r.proto = new(P)
	f, ok := any(r.proto).(Field)
	if !ok {
		return fmt.Errorf("Repeated wraps %T, which is not a port type", *r.proto)
	}
	if _, nested := any(r.proto).(cardinalityWrapper); nested {
		return fmt.Errorf("cardinality wrapping is single-level; Repeated cannot wrap %T", *r.proto)
	}
	if err := f.init(tag, bind); err != nil {
		return err
	}
	f.markRepeated()
	r.inner = f
	r.bind = bind
	return nil
}

func (r *Repeated[P]) Tag() string       { return r.inner.Tag() }
func (r *Repeated[P]) Index() int        { return 0 }
func (r *Repeated[P]) Kind() engine.Kind { return r.inner.Kind() }
func (r *Repeated[P]) Key() engine.PortKey {
	return r.inner.Key()
}
func (r *Repeated[P]) IsOptional() bool { return false }
func (r *Repeated[P]) IsRepeated() bool { return true }

func (r *Repeated[P]) markOptional()  { r.inner.markOptional() }
func (r *Repeated[P]) markRepeated()  {}
func (r *Repeated[P]) setIndex(i int) { r.inner.setIndex(i) }
func (r *Repeated[P]) connected() bool {
	return r.inner.connected()
}

// describe registers every materialized index; a never-touched repeated
// port registers its index-0 pattern so the payload type is known.
func (r *Repeated[P]) describe(spec *engine.ContractSpec) error {
	if len(r.ports) == 0 {
		return r.inner.describe(spec)
	}
	for _, p := range r.ports {
		if err := any(p).(Field).describe(spec); err != nil {
			return err
		}
	}
	return nil
}

// At returns the i-th underlying port, materializing every index up to i
// on first touch.
func (r *Repeated[P]) At(i int) *P {
	if i < 0 {
		panic(fmt.Sprintf("repeated port %q: negative index %d", r.Tag(), i))
	}
	for len(r.ports) <= i {
		idx := len(r.ports)
		p := new(P)
		f := any(p).(Field)
		if err := f.init(r.inner.Tag(), r.bind); err != nil {
			panic(fmt.Sprintf("repeated port %q: %v", r.Tag(), err))
		}
		f.markRepeated()
		f.setIndex(idx)
		r.ports = append(r.ports, p)
	}
	return r.ports[i]
}

// Count reflects how many indices the active role's backing store has
// bound: wired indices during contract build, delivered indices during
// execution, recorded bindings during graph construction.
func (r *Repeated[P]) Count() int {
	if r.bind == nil {
		panic("port: repeated port used outside a contract instance")
	}
	switch r.bind.role {
	case RoleContractSpec:
		return r.bind.spec.ConnectedCount(r.Kind(), r.Tag())
	case RoleExecute:
		return r.bind.inv.CountOf(r.Kind(), r.Tag())
	case RoleGraphNode, RoleGraphGenerator:
		return r.bind.node.CountOf(r.Kind(), r.Tag())
	case RoleGraphRoot:
		return r.addCursor
	}
	panic(fmt.Sprintf("repeated port %q used before a role is active", r.Tag()))
}

// All returns the ports for indices 0..Count()-1 in index order.
func (r *Repeated[P]) All() []*P {
	n := r.Count()
	out := make([]*P, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.At(i))
	}
	return out
}

// Add appends the next index during graph construction and returns its
// port for immediate wiring.
func (r *Repeated[P]) Add() *P {
	if r.bind == nil || (r.bind.role != RoleGraphNode && r.bind.role != RoleGraphRoot && r.bind.role != RoleGraphGenerator) {
		panic(fmt.Sprintf("repeated port %q: Add is a graph-construction operation", r.Tag()))
	}
	i := r.addCursor
	r.addCursor++
	return r.At(i)
}

// Optional wraps a base port kind with 0..1 cardinality: absence is a
// legal state, not an error. Wrapping another cardinality wrapper is a
// shape error.
type Optional[P any] struct {
	port  P
	inner Field
}

func (o *Optional[P]) isCardinalityWrapper() {}

func (o *Optional[P]) init(tag string, bind *binding) error {
	f, ok := any(&o.port).(Field)
	if !ok {
		return fmt.Errorf("Optional wraps %T, which is not a port type", o.port)
	}
	if _, nested := any(&o.port).(cardinalityWrapper); nested {
		return fmt.Errorf("cardinality wrapping is single-level; Optional cannot wrap %T", o.port)
	}
	if err := f.init(tag, bind); err != nil {
		return err
	}
	f.markOptional()
	o.inner = f
	return nil
}

func (o *Optional[P]) Tag() string         { return o.inner.Tag() }
func (o *Optional[P]) Index() int          { return o.inner.Index() }
func (o *Optional[P]) Kind() engine.Kind   { return o.inner.Kind() }
func (o *Optional[P]) Key() engine.PortKey { return o.inner.Key() }
func (o *Optional[P]) IsOptional() bool    { return true }
func (o *Optional[P]) IsRepeated() bool    { return false }

func (o *Optional[P]) markOptional()   {}
func (o *Optional[P]) markRepeated()   { o.inner.markRepeated() }
func (o *Optional[P]) setIndex(i int)  { o.inner.setIndex(i) }
func (o *Optional[P]) connected() bool { return o.inner.connected() }

func (o *Optional[P]) describe(spec *engine.ContractSpec) error {
	return o.inner.describe(spec)
}

// Port returns the wrapped port for role-specific operations.
func (o *Optional[P]) Port() *P { return &o.port }

// IsConnected reports whether the surrounding graph wires this port.
// Available in the contract-build and execute roles; in graph roles
// optionality only means the graph need not supply the value.
func (o *Optional[P]) IsConnected() bool {
	return o.inner.connected()
}
