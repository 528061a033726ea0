package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
)

// SideInput declares a single-value side channel the node consumes. The
// value is delivered once, with no timestamp semantics.
type SideInput[T any] struct {
	base
	handle *streamState
}

func (p *SideInput[T]) init(tag string, bind *binding) error {
	typ, oneOf := payloadOf[T]()
	return p.initBase(engine.KindSideInput, tag, bind, typ, oneOf)
}

// HasValue reports whether the side value has been delivered.
func (p *SideInput[T]) HasValue() bool {
	b := p.require(RoleExecute)
	pk, ok := b.inv.Input(p.Key())
	return ok && !pk.Empty()
}

// MustValue returns the delivered side value, panicking when absent.
func (p *SideInput[T]) MustValue() T {
	b := p.require(RoleExecute)
	pk, ok := b.inv.Input(p.Key())
	if !ok || pk.Empty() {
		panic(fmt.Sprintf("side input %q has no value; check HasValue first", p.tag))
	}
	var zero T
	if w, isMarker := any(zero).(packetWrapper); isMarker {
		return w.withPacket(pk).(T)
	}
	v, err := engine.As[T](pk)
	if err != nil {
		panic(fmt.Sprintf("side input %q: %v", p.tag, err))
	}
	return v
}

// Packet returns the wrapped side packet, empty when absent.
func (p *SideInput[T]) Packet() engine.Packet {
	b := p.require(RoleExecute)
	pk, _ := b.inv.Input(p.Key())
	return pk
}

// Set wires this side input to a side packet produced elsewhere.
func (p *SideInput[T]) Set(s Side[T]) {
	b := p.require(RoleGraphNode, RoleGraphGenerator)
	binding := graphdesc.Binding{Tag: p.tag, Index: p.index, Indexed: p.repeated, Name: s.mustName()}
	if err := b.node.Bind(engine.KindSideInput, binding, false); err != nil {
		panic(fmt.Sprintf("side input %q: %v", p.tag, err))
	}
}

// Side exposes one of the pipeline's external side packets as a source.
// Valid only on a contract bound as the graph root.
func (p *SideInput[T]) Side() Side[T] {
	b := p.require(RoleGraphRoot)
	if p.handle == nil {
		name := p.tag
		if name == "" {
			name = b.gb.NextSidePacketName()
		}
		b.gb.AddGraphSideInput(name)
		p.handle = &streamState{name: name}
	}
	return Side[T]{s: p.handle}
}

// SideOutput declares a single-value side channel the node produces.
type SideOutput[T any] struct {
	base
	handle *streamState
}

func (p *SideOutput[T]) init(tag string, bind *binding) error {
	typ, oneOf := payloadOf[T]()
	return p.initBase(engine.KindSideOutput, tag, bind, typ, oneOf)
}

// Send delivers the side value. A side channel carries exactly one value;
// sending twice is an error surfaced by the backing context.
func (p *SideOutput[T]) Send(v T) error {
	var pk engine.Packet
	if c, isMarker := any(v).(packetCarrier); isMarker {
		pk = c.Packet()
	} else {
		pk = engine.NewPacket(v)
	}
	return p.SendPacket(pk)
}

// SendPacket delivers an already-wrapped side value.
func (p *SideOutput[T]) SendPacket(pk engine.Packet) error {
	b := p.require(RoleExecute)
	if len(b.inv.Outputs(p.Key())) > 0 {
		return fmt.Errorf("side output %q already delivered its value", p.tag)
	}
	return b.inv.Emit(p.Key(), pk)
}

// Side returns a handle to the side packet produced here, auto-named
// deterministically on first use.
func (p *SideOutput[T]) Side() Side[T] {
	return p.side("")
}

// SideNamed is Side with an explicit side-packet name.
func (p *SideOutput[T]) SideNamed(name string) Side[T] {
	if name == "" {
		panic(fmt.Sprintf("side output %q: SideNamed requires a non-empty name", p.tag))
	}
	return p.side(name)
}

func (p *SideOutput[T]) side(name string) Side[T] {
	b := p.require(RoleGraphNode, RoleGraphGenerator)
	if p.handle != nil {
		if name != "" && name != p.handle.name {
			panic(fmt.Sprintf("side output %q already produces %q, cannot rename to %q", p.tag, p.handle.name, name))
		}
		return Side[T]{s: p.handle}
	}
	if name == "" {
		name = b.gb.NextSidePacketName()
	}
	binding := graphdesc.Binding{Tag: p.tag, Index: p.index, Indexed: p.repeated, Name: name}
	if err := b.node.Bind(engine.KindSideOutput, binding, false); err != nil {
		panic(fmt.Sprintf("side output %q: %v", p.tag, err))
	}
	p.handle = &streamState{name: name}
	return Side[T]{s: p.handle}
}

// Set wires a produced side packet to the graph root, declaring it one of
// the pipeline's external side outputs.
func (p *SideOutput[T]) Set(s Side[T]) {
	b := p.require(RoleGraphRoot)
	b.gb.AddGraphSideOutput(s.mustName())
}
