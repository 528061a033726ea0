package calculators

import (
	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/port"
	"github.com/vk/flowgrid/runtime"
)

// PassthroughContract forwards every input packet unchanged. The output's
// concrete payload type always equals the input's.
type PassthroughContract struct {
	In  port.Input[port.AnyVal]  `flow:"IN"`
	Out port.Output[port.AnyVal] `flow:"OUT"`
}

// UpdateSpec ties the erased output type to whatever the graph feeds in.
func (c *PassthroughContract) UpdateSpec(spec *engine.ContractSpec) error {
	c.Out.SetSameAs(&c.In)
	return nil
}

// ProcessPassthrough runs one invocation of the Passthrough calculator.
func ProcessPassthrough(b *runtime.Binding[PassthroughContract]) error {
	c := b.Contract()
	if !c.In.HasValue() {
		return nil
	}
	return c.Out.SendPacket(c.In.Packet())
}
