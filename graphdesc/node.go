package graphdesc

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
)

// OptionsPayload is one inlined configuration payload attached to a node.
// The payload is opaque to this layer; it travels as JSON-encoded cty data.
type OptionsPayload struct {
	TypeName string
	Data     []byte
}

// StreamHandler assigns a named input stream handler to a node, with its
// own opaque options payload.
type StreamHandler struct {
	Handler string
	Options *OptionsPayload
}

// Node is one record in a graph description: a calculator name plus the
// bindings wired onto its ports during construction.
type Node struct {
	Calculator string

	InputStreams      []Binding
	OutputStreams     []Binding
	InputSidePackets  []Binding
	OutputSidePackets []Binding

	Options            []OptionsPayload
	Executor           string
	InputStreamHandler *StreamHandler
	BackEdges          []string
	SourceLayer        int
}

// Bind appends a port binding of the given kind. A back-edge flag on an
// input additionally records the "TAG:index" marker; the flag is
// caller-asserted and never inferred from construction order.
func (n *Node) Bind(kind engine.Kind, b Binding, backEdge bool) error {
	switch kind {
	case engine.KindInput:
		n.InputStreams = append(n.InputStreams, b)
		if backEdge {
			n.BackEdges = append(n.BackEdges, engine.PortKey{Kind: kind, Tag: b.Tag, Index: b.Index}.String())
		}
	case engine.KindOutput:
		n.OutputStreams = append(n.OutputStreams, b)
	case engine.KindSideInput:
		n.InputSidePackets = append(n.InputSidePackets, b)
	case engine.KindSideOutput:
		n.OutputSidePackets = append(n.OutputSidePackets, b)
	default:
		return fmt.Errorf("graphdesc: kind %s cannot carry a stream binding", kind)
	}
	if backEdge && kind != engine.KindInput {
		return fmt.Errorf("graphdesc: back-edge marker is only valid on an input, got %s", kind)
	}
	return nil
}

// AddOptions appends an inlined configuration payload.
func (n *Node) AddOptions(p OptionsPayload) {
	n.Options = append(n.Options, p)
}

// CountOf returns the number of bindings present under (kind, tag), the
// backing value for a repeated port's Count in the graph-building role.
func (n *Node) CountOf(kind engine.Kind, tag string) int {
	count := 0
	for _, b := range n.bindings(kind) {
		if b.Tag == tag {
			count++
		}
	}
	return count
}

// HasBinding reports whether a binding exists for the exact port address.
func (n *Node) HasBinding(key engine.PortKey) bool {
	for _, b := range n.bindings(key.Kind) {
		if b.Tag == key.Tag && b.Index == key.Index {
			return true
		}
	}
	return false
}

func (n *Node) bindings(kind engine.Kind) []Binding {
	switch kind {
	case engine.KindInput:
		return n.InputStreams
	case engine.KindOutput:
		return n.OutputStreams
	case engine.KindSideInput:
		return n.InputSidePackets
	case engine.KindSideOutput:
		return n.OutputSidePackets
	}
	return nil
}
