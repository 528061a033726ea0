package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
)

// Output declares a timestamp-ordered data stream the node produces, with
// payload type T.
type Output[T any] struct {
	base
	handle *streamState
}

func (p *Output[T]) init(tag string, bind *binding) error {
	typ, oneOf := payloadOf[T]()
	return p.initBase(engine.KindOutput, tag, bind, typ, oneOf)
}

// --- contract-build role ---

// SetSameAs constrains this output's concrete payload type to equal the
// other port's concrete type. Only meaningful for type-erased payloads;
// the constraint is resolved at contract-build time.
func (p *Output[T]) SetSameAs(other interface{ Key() engine.PortKey }) {
	b := p.require(RoleContractSpec)
	b.spec.SetSameAs(p.Key(), other.Key())
}

// --- execute role ---

// Send publishes a value on this output at the current timestamp.
func (p *Output[T]) Send(v T) error {
	var pk engine.Packet
	if c, isMarker := any(v).(packetCarrier); isMarker {
		pk = c.Packet()
	} else {
		pk = engine.NewPacket(v)
	}
	return p.SendPacket(pk)
}

// SendPacket publishes an already-wrapped packet, avoiding a copy.
func (p *Output[T]) SendPacket(pk engine.Packet) error {
	b := p.require(RoleExecute)
	return b.inv.Emit(p.Key(), pk)
}

// SetNextTimestampBound declares how far into the future this output is
// guaranteed to produce nothing, an optimization hint for the engine.
func (p *Output[T]) SetNextTimestampBound(ts engine.Timestamp) {
	b := p.require(RoleExecute)
	b.inv.SetNextTimestampBound(p.Key(), ts)
}

// NextTimestampBound returns the declared bound, TimestampUnset when none.
func (p *Output[T]) NextTimestampBound() engine.Timestamp {
	b := p.require(RoleExecute)
	return b.inv.NextTimestampBound(p.Key())
}

// Close ends this output early. Further sends fail.
func (p *Output[T]) Close() {
	b := p.require(RoleExecute)
	b.inv.Close(p.Key())
}

// IsClosed reports whether Close has been called.
func (p *Output[T]) IsClosed() bool {
	b := p.require(RoleExecute)
	return b.inv.Closed(p.Key())
}

// --- graph roles ---

// Stream returns a handle to the stream produced here, usable as another
// node's input. The stream is auto-named deterministically in creation
// order on first use.
func (p *Output[T]) Stream() Stream[T] {
	return p.stream("")
}

// StreamNamed is Stream with an explicit stream name.
func (p *Output[T]) StreamNamed(name string) Stream[T] {
	if name == "" {
		panic(fmt.Sprintf("output %q: StreamNamed requires a non-empty name", p.tag))
	}
	return p.stream(name)
}

func (p *Output[T]) stream(name string) Stream[T] {
	b := p.require(RoleGraphNode)
	if p.handle != nil {
		if name != "" && name != p.handle.name {
			panic(fmt.Sprintf("output %q already produces stream %q, cannot rename to %q", p.tag, p.handle.name, name))
		}
		return Stream[T]{s: p.handle}
	}
	if name == "" {
		name = b.gb.NextStreamName()
	}
	binding := graphdesc.Binding{Tag: p.tag, Index: p.index, Indexed: p.repeated, Name: name}
	if err := b.node.Bind(engine.KindOutput, binding, false); err != nil {
		panic(fmt.Sprintf("output %q: %v", p.tag, err))
	}
	p.handle = &streamState{name: name}
	return Stream[T]{s: p.handle}
}

// Set wires a node-produced stream to this port on the graph root,
// declaring it one of the pipeline's external outputs.
func (p *Output[T]) Set(s Stream[T]) {
	b := p.require(RoleGraphRoot)
	b.gb.AddGraphOutput(s.mustName())
}
