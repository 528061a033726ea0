package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Field is the reflection surface every port type exposes to the contract
// machinery. Concrete port values implement it with pointer receivers, so
// reflection hands out addressable references.
type Field interface {
	Tag() string
	Index() int
	Kind() engine.Kind
	Key() engine.PortKey
	IsOptional() bool
	IsRepeated() bool

	init(tag string, bind *binding) error
	describe(spec *engine.ContractSpec) error
	markOptional()
	markRepeated()
	setIndex(i int)
	connected() bool
}

// cardinalityWrapper marks Repeated and Optional so single-level wrapping
// can be enforced.
type cardinalityWrapper interface {
	isCardinalityWrapper()
}

// base carries the state shared by all port kinds: the address, payload
// type, cardinality flags and the role back-reference.
type base struct {
	tag      string
	kind     engine.Kind
	index    int
	optional bool
	repeated bool
	payload  cty.Type
	oneOf    []cty.Type
	bind     *binding
}

func (b *base) Tag() string       { return b.tag }
func (b *base) Index() int        { return b.index }
func (b *base) Kind() engine.Kind { return b.kind }
func (b *base) IsOptional() bool  { return b.optional }
func (b *base) IsRepeated() bool  { return b.repeated }

// Key returns the port's unique address within its contract.
func (b *base) Key() engine.PortKey {
	return engine.PortKey{Kind: b.kind, Tag: b.tag, Index: b.index}
}

func (b *base) initBase(kind engine.Kind, tag string, bind *binding, payload cty.Type, oneOf []cty.Type) error {
	if b.bind != nil {
		return fmt.Errorf("port %q (%s) initialized twice; a port belongs to exactly one contract instance", tag, kind)
	}
	b.kind = kind
	b.tag = tag
	b.bind = bind
	b.payload = payload
	b.oneOf = oneOf
	return nil
}

func (b *base) describe(spec *engine.ContractSpec) error {
	return spec.AddPort(engine.PortSpec{
		Key:      b.Key(),
		Type:     b.payload,
		OneOf:    b.oneOf,
		Optional: b.optional,
		Repeated: b.repeated,
	})
}

func (b *base) markOptional()  { b.optional = true }
func (b *base) markRepeated()  { b.repeated = true }
func (b *base) setIndex(i int) { b.index = i }

// require returns the active binding, panicking when the port is not
// activated or active in a different role. Such misuse is a coding error in
// the node, never a data condition.
func (b *base) require(roles ...Role) *binding {
	if b.bind == nil {
		panic(fmt.Sprintf("port %q used outside a contract instance", b.tag))
	}
	for _, r := range roles {
		if b.bind.role == r {
			return b.bind
		}
	}
	panic(fmt.Sprintf("port %q (%s) used in role %s, valid roles: %v", b.tag, b.kind, b.bind.role, roles))
}

// connected reports graph connectivity in the contract-build and execute
// roles, the two roles where "is this wired" is answerable.
func (b *base) connected() bool {
	bind := b.require(RoleContractSpec, RoleExecute)
	if bind.role == RoleContractSpec {
		return bind.spec.Connected(b.Key())
	}
	return bind.inv.Connected(b.Key())
}

// payloadOf computes the declared payload type of a Go type parameter. Type
// markers (AnyVal, OneOf2, ...) declare themselves; everything else goes
// through implied typing, falling back to the dynamic pseudo type for Go
// values the type system cannot express.
func payloadOf[T any]() (cty.Type, []cty.Type) {
	var zero T
	if m, ok := any(zero).(typeMarker); ok {
		return m.payloadType()
	}
	return impliedOf[T](), nil
}

func impliedOf[T any]() cty.Type {
	var zero T
	typ, err := gocty.ImpliedType(zero)
	if err != nil {
		return cty.DynamicPseudoType
	}
	return typ
}
