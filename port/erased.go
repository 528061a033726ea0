package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/zclconf/go-cty/cty"
)

// typeMarker lets erased payload types declare themselves to payloadOf.
type typeMarker interface {
	payloadType() (cty.Type, []cty.Type)
}

// packetWrapper converts a received packet into the marker value handed to
// the caller of MustValue.
type packetWrapper interface {
	withPacket(p engine.Packet) any
}

// packetCarrier exposes the packet wrapped inside a marker value being sent.
type packetCarrier interface {
	Packet() engine.Packet
}

// Union is any received erased value that concrete-typed reads can be
// attempted against.
type Union interface {
	Packet() engine.Packet
}

// AnyVal is the fully type-erased payload marker. A port declared with it
// accepts any payload; concrete types are checked only on access, and a
// mismatch is a recoverable error.
type AnyVal struct {
	p engine.Packet
}

func (AnyVal) payloadType() (cty.Type, []cty.Type) { return cty.DynamicPseudoType, nil }

func (AnyVal) withPacket(p engine.Packet) any { return AnyVal{p: p} }

// Packet returns the wrapped packet.
func (v AnyVal) Packet() engine.Packet { return v.p }

// AnyOf wraps a concrete value for sending through an AnyVal port.
func AnyOf(v any) AnyVal { return AnyVal{p: engine.NewPacket(v)} }

// OneOf2 is a two-alternative restricted-union payload marker. Exactly one
// alternative is active per received value, chosen by the concrete type
// sent upstream.
type OneOf2[A, B any] struct {
	p engine.Packet
}

func (OneOf2[A, B]) payloadType() (cty.Type, []cty.Type) {
	return cty.DynamicPseudoType, []cty.Type{impliedOf[A](), impliedOf[B]()}
}

func (OneOf2[A, B]) withPacket(p engine.Packet) any { return OneOf2[A, B]{p: p} }

// Packet returns the wrapped packet.
func (v OneOf2[A, B]) Packet() engine.Packet { return v.p }

// Visit dispatches on the active alternative, one callback per alternative.
func (v OneOf2[A, B]) Visit(onA func(A), onB func(B)) error {
	if a, err := engine.As[A](v.p); err == nil {
		onA(a)
		return nil
	}
	if b, err := engine.As[B](v.p); err == nil {
		onB(b)
		return nil
	}
	return fmt.Errorf("port: value of type %T matches no alternative", v.p.Value())
}

// VisitAny hands the active value to a single generic callback.
func (v OneOf2[A, B]) VisitAny(f func(any)) error {
	if v.p.Empty() {
		return fmt.Errorf("port: no value to visit")
	}
	f(v.p.Value())
	return nil
}

// FirstOf2 wraps an A for sending through a OneOf2[A, B] port.
func FirstOf2[A, B any](a A) OneOf2[A, B] { return OneOf2[A, B]{p: engine.NewPacket(a)} }

// SecondOf2 wraps a B for sending through a OneOf2[A, B] port.
func SecondOf2[A, B any](b B) OneOf2[A, B] { return OneOf2[A, B]{p: engine.NewPacket(b)} }

// OneOf3 is the three-alternative variant of OneOf2.
type OneOf3[A, B, C any] struct {
	p engine.Packet
}

func (OneOf3[A, B, C]) payloadType() (cty.Type, []cty.Type) {
	return cty.DynamicPseudoType, []cty.Type{impliedOf[A](), impliedOf[B](), impliedOf[C]()}
}

func (OneOf3[A, B, C]) withPacket(p engine.Packet) any { return OneOf3[A, B, C]{p: p} }

// Packet returns the wrapped packet.
func (v OneOf3[A, B, C]) Packet() engine.Packet { return v.p }

// Visit dispatches on the active alternative, one callback per alternative.
func (v OneOf3[A, B, C]) Visit(onA func(A), onB func(B), onC func(C)) error {
	if a, err := engine.As[A](v.p); err == nil {
		onA(a)
		return nil
	}
	if b, err := engine.As[B](v.p); err == nil {
		onB(b)
		return nil
	}
	if c, err := engine.As[C](v.p); err == nil {
		onC(c)
		return nil
	}
	return fmt.Errorf("port: value of type %T matches no alternative", v.p.Value())
}

// VisitAny hands the active value to a single generic callback.
func (v OneOf3[A, B, C]) VisitAny(f func(any)) error {
	if v.p.Empty() {
		return fmt.Errorf("port: no value to visit")
	}
	f(v.p.Value())
	return nil
}

// FirstOf3 wraps an A for sending through a OneOf3[A, B, C] port.
func FirstOf3[A, B, C any](a A) OneOf3[A, B, C] { return OneOf3[A, B, C]{p: engine.NewPacket(a)} }

// SecondOf3 wraps a B for sending through a OneOf3[A, B, C] port.
func SecondOf3[A, B, C any](b B) OneOf3[A, B, C] { return OneOf3[A, B, C]{p: engine.NewPacket(b)} }

// ThirdOf3 wraps a C for sending through a OneOf3[A, B, C] port.
func ThirdOf3[A, B, C any](c C) OneOf3[A, B, C] { return OneOf3[A, B, C]{p: engine.NewPacket(c)} }

// Has reports whether the received value's concrete type is T.
func Has[T any](u Union) bool {
	_, err := engine.As[T](u.Packet())
	return err == nil
}

// Get extracts the received value as T. A mismatch is recoverable.
func Get[T any](u Union) (T, error) {
	return engine.As[T](u.Packet())
}

// MustGet extracts the received value as T, panicking on mismatch. Callers
// must establish the active alternative with Has first.
func MustGet[T any](u Union) T {
	v, err := engine.As[T](u.Packet())
	if err != nil {
		panic(fmt.Sprintf("port: %v", err))
	}
	return v
}

// PacketOf returns the wrapped packet when the active alternative is T.
func PacketOf[T any](u Union) (engine.Packet, error) {
	if _, err := engine.As[T](u.Packet()); err != nil {
		return engine.Packet{}, err
	}
	return u.Packet(), nil
}
