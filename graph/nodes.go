package graph

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
	"github.com/vk/flowgrid/port"
)

// AddNode appends a node record for the named calculator and returns its
// contract with every port bound to that record. Subsequent Set, Stream
// and Add calls on the contract's fields wire the node.
func AddNode[C any](g *Builder, calculator string) *C {
	shape := new(C)
	record := &graphdesc.Node{Calculator: calculator}
	g.desc.Nodes = append(g.desc.Nodes, record)

	if g.reg != nil {
		if _, ok := g.reg.Lookup(calculator); !ok {
			g.errs = append(g.errs, fmt.Sprintf("node %q: calculator is not registered", calculator))
		}
	}
	g.bindShape(shape, port.RoleGraphNode, record, calculator)
	return shape
}

// AddGenerator appends a legacy generator record. Generators carry only
// side channels; a contract with stream ports is rejected.
func AddGenerator[C any](g *Builder, calculator string) *C {
	shape := new(C)
	record := &graphdesc.Node{Calculator: calculator}
	g.desc.Generators = append(g.desc.Generators, record)

	inst := g.bindShape(shape, port.RoleGraphGenerator, record, calculator)
	if inst != nil {
		for _, f := range inst.Fields() {
			if f.Kind() == engine.KindInput || f.Kind() == engine.KindOutput {
				g.errs = append(g.errs, fmt.Sprintf("generator %q: port %q is a stream; generators may only declare side channels and options", calculator, f.Tag()))
			}
		}
	}
	return shape
}

// AddRoot binds a contract to the pipeline's own boundary: its inputs
// become external input streams usable as sources, its outputs declare
// external outputs.
func AddRoot[C any](g *Builder) *C {
	shape := new(C)
	inst, err := port.NewInstance(shape)
	if err != nil {
		g.errs = append(g.errs, err.Error())
		return shape
	}
	inst.ActivateGraph(port.RoleGraphRoot, nil, g)
	return shape
}

func (g *Builder) bindShape(shape any, role port.Role, record *graphdesc.Node, calculator string) *port.Instance {
	if err := port.Validate(shape); err != nil {
		g.errs = append(g.errs, err.Error())
		return nil
	}
	inst, err := port.NewInstance(shape)
	if err != nil {
		g.errs = append(g.errs, err.Error())
		return nil
	}
	inst.ActivateGraph(role, record, g)
	g.nodes = append(g.nodes, &boundNode{record: record, inst: inst})
	return inst
}
