package calculators

import (
	"github.com/vk/flowgrid/port"
	"github.com/vk/flowgrid/runtime"
)

// ConstantOptions configures the ConstantSidePacket calculator.
type ConstantOptions struct {
	Value string `cty:"value"`
}

// ConstantSidePacketContract delivers a configured string as a side packet.
// Carries no streams, so it is also usable as a generator.
type ConstantSidePacketContract struct {
	Opts   port.Options[ConstantOptions] `flow:"OPTIONS"`
	Packet port.SideOutput[string]       `flow:"PACKET"`
}

// ProcessConstantSidePacket delivers the configured value once.
func ProcessConstantSidePacket(b *runtime.Binding[ConstantSidePacketContract]) error {
	c := b.Contract()
	opts, err := c.Opts.Get()
	if err != nil {
		return err
	}
	return c.Packet.Send(opts.Value)
}
