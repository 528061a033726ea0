package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
)

// Input declares a timestamp-ordered data stream the node consumes, with
// payload type T.
type Input[T any] struct {
	base
	handle *streamState
}

func (p *Input[T]) init(tag string, bind *binding) error {
	typ, oneOf := payloadOf[T]()
	return p.initBase(engine.KindInput, tag, bind, typ, oneOf)
}

// --- execute role ---

// HasValue reports whether a packet with a value is present at the current
// invocation's timestamp. Callers must branch on HasValue before MustValue
// for any port that is not unconditionally connected.
func (p *Input[T]) HasValue() bool {
	b := p.require(RoleExecute)
	pk, ok := b.inv.Input(p.Key())
	return ok && !pk.Empty()
}

// MustValue returns the value present at the current timestamp. Absence is
// a fatal programmer error: the contract already states which ports can be
// absent, so failing to check first is a bug in the node.
func (p *Input[T]) MustValue() T {
	b := p.require(RoleExecute)
	pk, ok := b.inv.Input(p.Key())
	if !ok || pk.Empty() {
		panic(fmt.Sprintf("input %q has no value at timestamp %s; check HasValue first", p.tag, b.inv.Timestamp()))
	}
	var zero T
	if w, isMarker := any(zero).(packetWrapper); isMarker {
		return w.withPacket(pk).(T)
	}
	v, err := engine.As[T](pk)
	if err != nil {
		panic(fmt.Sprintf("input %q: %v", p.tag, err))
	}
	return v
}

// Packet returns the wrapped packet at the current timestamp, empty when
// absent. Useful for passing a value downstream without copying.
func (p *Input[T]) Packet() engine.Packet {
	b := p.require(RoleExecute)
	pk, _ := b.inv.Input(p.Key())
	return pk
}

// --- graph roles ---

// Set wires this input to a previously produced stream.
func (p *Input[T]) Set(s Stream[T]) {
	p.set(s, false)
}

// SetBackEdge wires this input to a stream whose producer is defined later
// in construction order. The marker is caller-asserted and recorded as is.
func (p *Input[T]) SetBackEdge(s Stream[T]) {
	p.set(s, true)
}

func (p *Input[T]) set(s Stream[T], backEdge bool) {
	b := p.require(RoleGraphNode)
	binding := graphdesc.Binding{Tag: p.tag, Index: p.index, Indexed: p.repeated, Name: s.mustName()}
	if err := b.node.Bind(engine.KindInput, binding, backEdge); err != nil {
		panic(fmt.Sprintf("input %q: %v", p.tag, err))
	}
}

// Stream exposes one of the pipeline's external input streams as a source
// for node inputs. Valid only on a contract bound as the graph root. The
// stream is named after the port's tag, or deterministically when untagged.
func (p *Input[T]) Stream() Stream[T] {
	b := p.require(RoleGraphRoot)
	if p.handle == nil {
		name := p.tag
		if name == "" {
			name = b.gb.NextStreamName()
		}
		b.gb.AddGraphInput(name)
		p.handle = &streamState{name: name}
	}
	return Stream[T]{s: p.handle}
}
