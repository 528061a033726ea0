package graph

import (
	"fmt"
	"strings"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
)

// Config serializes the accumulated node records and endpoint declarations
// into the final description. All construction errors plus completeness
// violations (a required, non-optional input left unwired) are aggregated
// into a single error.
func (g *Builder) Config() (*graphdesc.Description, error) {
	errs := make([]string, len(g.errs))
	copy(errs, g.errs)

	for _, bn := range g.nodes {
		for _, f := range bn.inst.Fields() {
			if f.IsOptional() || f.IsRepeated() {
				continue
			}
			switch f.Kind() {
			case engine.KindInput, engine.KindSideInput:
				if !bn.record.HasBinding(f.Key()) {
					errs = append(errs, fmt.Sprintf("node %q: required %s %q is not wired",
						bn.record.Calculator, f.Kind(), f.Tag()))
				}
			}
		}
	}

	if err := g.desc.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("graph %q construction failed:\n- %s", g.desc.Name, strings.Join(errs, "\n- "))
	}
	return g.desc, nil
}
