package engine

import "fmt"

// Kind identifies the base port kind a contract field declares.
type Kind int

const (
	// KindInput is a timestamp-ordered data stream consumed by a node.
	KindInput Kind = iota
	// KindOutput is a timestamp-ordered data stream produced by a node.
	KindOutput
	// KindSideInput is a single-value side channel consumed by a node.
	KindSideInput
	// KindSideOutput is a single-value side channel produced by a node.
	KindSideOutput
	// KindOptions is an inlined configuration payload attached to a node.
	KindOptions
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindSideInput:
		return "side_input"
	case KindSideOutput:
		return "side_output"
	case KindOptions:
		return "options"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// PortKey uniquely addresses one port of a node: its kind, symbolic tag and
// index. An empty tag is legal and denotes an untagged port. Index defaults
// to 0 and only repeated ports use higher indices.
type PortKey struct {
	Kind  Kind
	Tag   string
	Index int
}

// String renders the key in the canonical "TAG:index" form used by graph
// descriptions and back-edge markers.
func (k PortKey) String() string {
	return fmt.Sprintf("%s:%d", k.Tag, k.Index)
}
