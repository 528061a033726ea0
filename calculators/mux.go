package calculators

import (
	"fmt"

	"github.com/vk/flowgrid/port"
	"github.com/vk/flowgrid/runtime"
)

// MuxContract selects one of N inputs by index and forwards its packet.
type MuxContract struct {
	Select port.Input[int64]                      `flow:"SELECT"`
	In     port.Repeated[port.Input[port.AnyVal]] `flow:"IN"`
	Out    port.Output[port.AnyVal]               `flow:"OUT"`
}

// ProcessMux runs one invocation of the Mux calculator.
func ProcessMux(b *runtime.Binding[MuxContract]) error {
	c := b.Contract()
	if !c.Select.HasValue() {
		return nil
	}
	idx := int(c.Select.MustValue())
	if idx < 0 || idx >= c.In.Count() {
		return fmt.Errorf("mux: selected input %d of %d", idx, c.In.Count())
	}
	in := c.In.At(idx)
	if !in.HasValue() {
		return nil
	}
	return c.Out.SendPacket(in.Packet())
}
