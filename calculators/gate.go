package calculators

import (
	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/port"
	"github.com/vk/flowgrid/runtime"
)

// GateContract forwards its input only while the control signal allows it.
// An unwired or silent control defaults to open.
type GateContract struct {
	In    port.Input[port.AnyVal]         `flow:"IN"`
	Allow port.Optional[port.Input[bool]] `flow:"ALLOW"`
	Out   port.Output[port.AnyVal]        `flow:"OUT"`
}

// UpdateSpec ties the erased output type to the input.
func (c *GateContract) UpdateSpec(spec *engine.ContractSpec) error {
	c.Out.SetSameAs(&c.In)
	return nil
}

// ProcessGate runs one invocation of the Gate calculator.
func ProcessGate(b *runtime.Binding[GateContract]) error {
	c := b.Contract()
	if !c.In.HasValue() {
		return nil
	}
	if c.Allow.IsConnected() && c.Allow.Port().HasValue() && !c.Allow.Port().MustValue() {
		return nil
	}
	return c.Out.SendPacket(c.In.Packet())
}
