package calculators

import "github.com/vk/flowgrid/registry"

// Module implements the registry.Module interface for the built-in set.
type Module struct{}

// Register registers every built-in calculator.
func (m *Module) Register(r *registry.Registry) {
	r.Register("Passthrough", &registry.Calculator{
		NewContract: func() any { return &PassthroughContract{} },
	})
	r.Register("Gate", &registry.Calculator{
		NewContract: func() any { return &GateContract{} },
	})
	r.Register("Mux", &registry.Calculator{
		NewContract: func() any { return &MuxContract{} },
	})
	r.Register("ConstantSidePacket", &registry.Calculator{
		NewContract: func() any { return &ConstantSidePacketContract{} },
	})
}
