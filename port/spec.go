package port

import (
	"fmt"
	"strings"

	"github.com/vk/flowgrid/engine"
)

// SpecHook customizes a raw contract after all ports are registered.
type SpecHook func(*engine.ContractSpec) error

// SpecUpdater is implemented by contract shapes that customize their raw
// contract beyond what the field declarations express, e.g. same-as
// constraints or mutual-exclusion rules between optional inputs.
type SpecUpdater interface {
	UpdateSpec(*engine.ContractSpec) error
}

// BindSpec activates shape in the contract-build role against spec and
// registers every reflected field's payload type, cardinality and
// optionality. The shape's own UpdateSpec hook runs after registration,
// then any implementation-level override hooks, in order. Failures from
// all of them are combined into one aggregated error rather than stopping
// at the first.
//
// The returned Instance stays activated in the contract-build role so the
// caller can inspect connectivity-dependent state.
func BindSpec(shape any, spec *engine.ContractSpec, hooks ...SpecHook) (*Instance, error) {
	inst, err := NewInstance(shape)
	if err != nil {
		return nil, err
	}
	inst.ActivateSpec(spec)

	var errs []string
	for i, f := range inst.Fields() {
		if err := f.describe(spec); err != nil {
			errs = append(errs, fmt.Sprintf("field %d (tag %q): %v", i, f.Tag(), err))
		}
	}
	if u, ok := shape.(SpecUpdater); ok {
		if err := u.UpdateSpec(spec); err != nil {
			errs = append(errs, fmt.Sprintf("contract hook: %v", err))
		}
	}
	for _, h := range hooks {
		if err := h(spec); err != nil {
			errs = append(errs, fmt.Sprintf("calculator hook: %v", err))
		}
	}
	if len(errs) > 0 {
		return inst, fmt.Errorf("contract build for %q failed:\n- %s", spec.Calculator(), strings.Join(errs, "\n- "))
	}
	return inst, nil
}
