package port

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgrid/engine"
	"github.com/zclconf/go-cty/cty"
)

type passthroughContract struct {
	In  Input[AnyVal]  `flow:"IN"`
	Out Output[AnyVal] `flow:"OUT"`
}

func (c *passthroughContract) UpdateSpec(spec *engine.ContractSpec) error {
	c.Out.SetSameAs(&c.In)
	return nil
}

type richContract struct {
	Frames   Repeated[Input[float64]]  `flow:"IN"`
	Selected Output[float64]           `flow:"OUT"`
	Header   Optional[SideInput[bool]] `flow:"HEADER"`
	Opts     Options[richOpts]         `flow:"OPTIONS"`
}

type richOpts struct {
	Limit int64 `cty:"limit"`
}

func TestBindSpec(t *testing.T) {
	t.Run("registers payload types and flags", func(t *testing.T) {
		spec := engine.NewContractSpec("Rich")
		_, err := BindSpec(&richContract{}, spec)
		require.NoError(t, err)

		in, ok := spec.Port(engine.PortKey{Kind: engine.KindInput, Tag: "IN"})
		require.True(t, ok)
		assert.True(t, in.Type.Equals(cty.Number))
		assert.True(t, in.Repeated)
		assert.False(t, in.Optional)

		header, ok := spec.Port(engine.PortKey{Kind: engine.KindSideInput, Tag: "HEADER"})
		require.True(t, ok)
		assert.True(t, header.Optional)
		assert.True(t, header.Type.Equals(cty.Bool))

		opts, ok := spec.Port(engine.PortKey{Kind: engine.KindOptions, Tag: "OPTIONS"})
		require.True(t, ok)
		assert.True(t, opts.Type.Equals(cty.Object(map[string]cty.Type{"limit": cty.Number})))
	})

	t.Run("shape hook runs and same-as resolves", func(t *testing.T) {
		spec := engine.NewContractSpec("Passthrough")
		spec.MarkConnected(engine.PortKey{Kind: engine.KindInput, Tag: "IN"})
		_, err := BindSpec(&passthroughContract{}, spec)
		require.NoError(t, err)

		require.Len(t, spec.SameAsConstraints(), 1)
		require.NoError(t, spec.Resolve())
	})

	t.Run("calculator hooks run after the shape hook", func(t *testing.T) {
		spec := engine.NewContractSpec("Passthrough")
		var order []string
		_, err := BindSpec(&passthroughContract{}, spec,
			func(s *engine.ContractSpec) error {
				order = append(order, "first")
				return nil
			},
			func(s *engine.ContractSpec) error {
				order = append(order, "second")
				return errors.New("boom")
			},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calculator hook: boom")
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("instance stays in the contract-build role", func(t *testing.T) {
		spec := engine.NewContractSpec("Rich")
		inst, err := BindSpec(&richContract{}, spec)
		require.NoError(t, err)
		assert.Equal(t, RoleContractSpec, inst.Role())
	})

	t.Run("repeated count follows wired indices", func(t *testing.T) {
		spec := engine.NewContractSpec("Rich")
		spec.MarkConnected(engine.PortKey{Kind: engine.KindInput, Tag: "IN", Index: 0})
		spec.MarkConnected(engine.PortKey{Kind: engine.KindInput, Tag: "IN", Index: 1})

		shape := &richContract{}
		_, err := BindSpec(shape, spec)
		require.NoError(t, err)
		assert.Equal(t, 2, shape.Frames.Count())
	})

	t.Run("optional connectivity at contract build", func(t *testing.T) {
		spec := engine.NewContractSpec("Rich")
		shape := &richContract{}
		_, err := BindSpec(shape, spec)
		require.NoError(t, err)
		assert.False(t, shape.Header.IsConnected())

		spec.MarkConnected(engine.PortKey{Kind: engine.KindSideInput, Tag: "HEADER"})
		assert.True(t, shape.Header.IsConnected())
	})
}
