package calculators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/registry"
	"github.com/vk/flowgrid/runtime"
)

func TestModule_Register(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	assert.Equal(t, []string{"ConstantSidePacket", "Gate", "Mux", "Passthrough"}, r.Names())
	require.NoError(t, r.Validate(context.Background()))
}

func TestProcessPassthrough(t *testing.T) {
	b, err := runtime.New[PassthroughContract]()
	require.NoError(t, err)

	inv := engine.NewInvocationContext(4)
	inv.AddInput(engine.PortKey{Kind: engine.KindInput, Tag: "IN"}, engine.NewPacket("payload").At(4))

	b.Bind(inv)
	require.NoError(t, ProcessPassthrough(b))
	b.Unbind()

	sent := inv.Outputs(engine.PortKey{Kind: engine.KindOutput, Tag: "OUT"})
	require.Len(t, sent, 1)
	assert.Equal(t, "payload", sent[0].Value())
	assert.Equal(t, engine.Timestamp(4), sent[0].Timestamp())
}

func TestProcessGate(t *testing.T) {
	outKey := engine.PortKey{Kind: engine.KindOutput, Tag: "OUT"}
	inKey := engine.PortKey{Kind: engine.KindInput, Tag: "IN"}
	allowKey := engine.PortKey{Kind: engine.KindInput, Tag: "ALLOW"}

	testCases := []struct {
		name     string
		setup    func(inv *engine.InvocationContext)
		expected int
	}{
		{
			name: "unwired control defaults to open",
			setup: func(inv *engine.InvocationContext) {
				inv.AddInput(inKey, engine.NewPacket("v"))
			},
			expected: 1,
		},
		{
			name: "control true forwards",
			setup: func(inv *engine.InvocationContext) {
				inv.AddInput(inKey, engine.NewPacket("v"))
				inv.AddInput(allowKey, engine.NewPacket(true))
			},
			expected: 1,
		},
		{
			name: "control false drops",
			setup: func(inv *engine.InvocationContext) {
				inv.AddInput(inKey, engine.NewPacket("v"))
				inv.AddInput(allowKey, engine.NewPacket(false))
			},
			expected: 0,
		},
		{
			name:     "no input, nothing to do",
			setup:    func(inv *engine.InvocationContext) {},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := runtime.New[GateContract]()
			require.NoError(t, err)

			inv := engine.NewInvocationContext(0)
			tc.setup(inv)

			b.Bind(inv)
			require.NoError(t, ProcessGate(b))
			b.Unbind()

			assert.Len(t, inv.Outputs(outKey), tc.expected)
		})
	}
}

func TestProcessMux(t *testing.T) {
	b, err := runtime.New[MuxContract]()
	require.NoError(t, err)

	inv := engine.NewInvocationContext(0)
	inv.AddInput(engine.PortKey{Kind: engine.KindInput, Tag: "SELECT"}, engine.NewPacket(int64(1)))
	inv.AddInput(engine.PortKey{Kind: engine.KindInput, Tag: "IN", Index: 0}, engine.NewPacket("zero"))
	inv.AddInput(engine.PortKey{Kind: engine.KindInput, Tag: "IN", Index: 1}, engine.NewPacket("one"))

	b.Bind(inv)
	require.NoError(t, ProcessMux(b))
	b.Unbind()

	sent := inv.Outputs(engine.PortKey{Kind: engine.KindOutput, Tag: "OUT"})
	require.Len(t, sent, 1)
	assert.Equal(t, "one", sent[0].Value())

	t.Run("out of range selection", func(t *testing.T) {
		b, err := runtime.New[MuxContract]()
		require.NoError(t, err)

		inv := engine.NewInvocationContext(0)
		inv.AddInput(engine.PortKey{Kind: engine.KindInput, Tag: "SELECT"}, engine.NewPacket(int64(5)))
		inv.AddInput(engine.PortKey{Kind: engine.KindInput, Tag: "IN", Index: 0}, engine.NewPacket("zero"))

		b.Bind(inv)
		defer b.Unbind()
		require.Error(t, ProcessMux(b))
	})
}

func TestProcessConstantSidePacket(t *testing.T) {
	b, err := runtime.New[ConstantSidePacketContract]()
	require.NoError(t, err)

	inv := engine.NewInvocationContext(0)
	inv.SetOptions(engine.PortKey{Kind: engine.KindOptions, Tag: "OPTIONS"}, ConstantOptions{Value: "/models/net.bin"})

	b.Bind(inv)
	require.NoError(t, ProcessConstantSidePacket(b))
	b.Unbind()

	sent := inv.Outputs(engine.PortKey{Kind: engine.KindSideOutput, Tag: "PACKET"})
	require.Len(t, sent, 1)
	assert.Equal(t, "/models/net.bin", sent[0].Value())
}
