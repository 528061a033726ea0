package graphdesc

import (
	"fmt"

	"lukechampine.com/blake3"
)

// Executor declares an auxiliary executor nodes can be assigned to.
type Executor struct {
	Name string
	Type string
}

// Description is the finished, immutable output of graph construction: the
// ordered node records plus the pipeline's own external endpoints.
type Description struct {
	Name string

	Nodes []*Node
	// Generators holds legacy side-channel-only generator records.
	Generators []*Node

	InputStreams      []string
	OutputStreams     []string
	InputSidePackets  []string
	OutputSidePackets []string

	Executors []Executor
}

// Validate performs structural checks on the description: every binding
// name is non-empty, back-edge markers reference bound inputs, and
// generator records carry no stream bindings. Violations are collected,
// not reported one at a time.
func (d *Description) Validate() error {
	var errs []string
	for i, n := range d.Nodes {
		errs = append(errs, validateNode(fmt.Sprintf("node %d (%s)", i, n.Calculator), n)...)
	}
	for i, g := range d.Generators {
		where := fmt.Sprintf("generator %d (%s)", i, g.Calculator)
		errs = append(errs, validateNode(where, g)...)
		if len(g.InputStreams) > 0 || len(g.OutputStreams) > 0 {
			errs = append(errs, fmt.Sprintf("%s: generators may only bind side packets", where))
		}
	}
	return joined("graph description invalid", errs)
}

func validateNode(where string, n *Node) []string {
	var errs []string
	if n.Calculator == "" {
		errs = append(errs, where+": calculator name is empty")
	}
	all := [][]Binding{n.InputStreams, n.OutputStreams, n.InputSidePackets, n.OutputSidePackets}
	for _, group := range all {
		for _, b := range group {
			if b.Name == "" {
				errs = append(errs, fmt.Sprintf("%s: binding %q has no stream name", where, b.String()))
			}
		}
	}
	for _, edge := range n.BackEdges {
		found := false
		for _, b := range n.InputStreams {
			if fmt.Sprintf("%s:%d", b.Tag, b.Index) == edge {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf("%s: back-edge %q does not match any input binding", where, edge))
		}
	}
	return errs
}

// Fingerprint returns the blake3-256 digest of the canonical HCL encoding.
// Two descriptions built by identical construction sequences produce
// identical fingerprints.
func (d *Description) Fingerprint() [32]byte {
	return blake3.Sum256(d.Canonical())
}

// Canonical returns the canonical HCL encoding of the description.
func (d *Description) Canonical() []byte {
	return d.EncodeHCL()
}

func joined(header string, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	out := header + ":"
	for _, e := range errs {
		out += "\n- " + e
	}
	return fmt.Errorf("%s", out)
}
