package engine

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Packet is one immutable value travelling through a stream or side channel,
// together with its payload type and timestamp. The zero Packet is empty.
type Packet struct {
	value any
	typ   cty.Type
	ts    Timestamp
}

// NewPacket wraps v, implying its payload type from the Go value. Values
// whose type cannot be expressed in the type system (arbitrary Go structs
// without cty tags, interfaces) are carried with the dynamic pseudo type and
// checked only on access.
func NewPacket(v any) Packet {
	typ, err := gocty.ImpliedType(v)
	if err != nil {
		typ = cty.DynamicPseudoType
	}
	return Packet{value: v, typ: typ, ts: TimestampUnset}
}

// NewTypedPacket wraps v with an explicitly declared payload type.
func NewTypedPacket(v any, typ cty.Type) Packet {
	return Packet{value: v, typ: typ, ts: TimestampUnset}
}

// At returns a copy of p stamped with ts.
func (p Packet) At(ts Timestamp) Packet {
	p.ts = ts
	return p
}

// Value returns the wrapped Go value, or nil for an empty packet.
func (p Packet) Value() any { return p.value }

// Type returns the packet's declared payload type.
func (p Packet) Type() cty.Type { return p.typ }

// Timestamp returns the timestamp the packet was stamped with.
func (p Packet) Timestamp() Timestamp { return p.ts }

// Empty reports whether the packet carries no value.
func (p Packet) Empty() bool { return p.value == nil }

// As extracts the packet's value as T. A mismatch between T and the concrete
// value is a recoverable error: erased payloads (any, one-of) make the
// concrete type an external input property, not a logic bug.
func As[T any](p Packet) (T, error) {
	var zero T
	if p.Empty() {
		return zero, fmt.Errorf("engine: packet is empty")
	}
	v, ok := p.value.(T)
	if !ok {
		return zero, fmt.Errorf("engine: packet holds %T, not %T", p.value, zero)
	}
	return v, nil
}
