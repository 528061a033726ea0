package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
	"github.com/vk/flowgrid/port"
	"github.com/vk/flowgrid/registry"
)

type passContract struct {
	In  port.Input[string]  `flow:"IN"`
	Out port.Output[string] `flow:"OUT"`
}

type muxContract struct {
	Frames port.Repeated[port.Input[string]] `flow:"IN"`
	Out    port.Output[string]               `flow:"OUT"`
}

type loopContract struct {
	In    port.Input[string]  `flow:"IN"`
	State port.Input[string]  `flow:"STATE"`
	Out   port.Output[string] `flow:"OUT"`
	Next  port.Output[string] `flow:"NEXT"`
}

type sideGenContract struct {
	Path port.SideOutput[string] `flow:"PATH"`
	Opts port.Options[genOpts]   `flow:"OPTIONS"`
}

type genOpts struct {
	Root string `cty:"root"`
}

func TestBuilder_ExplicitNames(t *testing.T) {
	g := New("pipeline")

	in := In[string](g, "a")
	node := AddNode[passContract](g, "Passthrough")
	node.In.Set(in)
	Out(g, node.Out.StreamNamed("b"))

	desc, err := g.Config()
	require.NoError(t, err)

	assert.Equal(t, "pipeline", desc.Name)
	assert.Equal(t, []string{"a"}, desc.InputStreams)
	assert.Equal(t, []string{"b"}, desc.OutputStreams)
	require.Len(t, desc.Nodes, 1)
	assert.Equal(t, "Passthrough", desc.Nodes[0].Calculator)
	assert.Equal(t, []graphdesc.Binding{{Tag: "IN", Name: "a"}}, desc.Nodes[0].InputStreams)
	assert.Equal(t, []graphdesc.Binding{{Tag: "OUT", Name: "b"}}, desc.Nodes[0].OutputStreams)
}

func TestBuilder_DeterministicAutoNames(t *testing.T) {
	build := func() *graphdesc.Description {
		g := New("chain")
		in := In[string](g, "source")
		first := AddNode[passContract](g, "Stage")
		first.In.Set(in)
		second := AddNode[passContract](g, "Stage")
		second.In.Set(first.Out.Stream())
		Out(g, second.Out.Stream())

		desc, err := g.Config()
		require.NoError(t, err)
		return desc
	}

	a := build()
	b := build()

	assert.Equal(t, "__stream_0", a.Nodes[0].OutputStreams[0].Name)
	assert.Equal(t, "__stream_1", a.Nodes[1].OutputStreams[0].Name)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Canonical(), b.Canonical())
}

func TestBuilder_RepeatedPorts(t *testing.T) {
	g := New("fanin")
	a := In[string](g, "a")
	b := In[string](g, "b")

	mux := AddNode[muxContract](g, "Mux")
	mux.Frames.Add().Set(a)
	mux.Frames.Add().Set(b)
	Out(g, mux.Out.Stream())

	desc, err := g.Config()
	require.NoError(t, err)

	require.Len(t, desc.Nodes[0].InputStreams, 2)
	assert.Equal(t, graphdesc.Binding{Tag: "IN", Index: 0, Indexed: true, Name: "a"}, desc.Nodes[0].InputStreams[0])
	assert.Equal(t, graphdesc.Binding{Tag: "IN", Index: 1, Indexed: true, Name: "b"}, desc.Nodes[0].InputStreams[1])
	assert.Equal(t, "IN:0:a", desc.Nodes[0].InputStreams[0].String())
}

type fanoutContract struct {
	In   port.Input[string]                 `flow:"IN"`
	Outs port.Repeated[port.Output[string]] `flow:"OUT"`
}

func TestBuilder_RepeatedOutputs(t *testing.T) {
	const n = 3

	g := New("fanout")
	in := In[string](g, "in")
	node := AddNode[fanoutContract](g, "Fanout")
	node.In.Set(in)
	for i := 0; i < n; i++ {
		Out(g, node.Outs.Add().Stream())
	}

	desc, err := g.Config()
	require.NoError(t, err)

	require.Len(t, desc.Nodes[0].OutputStreams, n)
	for i := 0; i < n; i++ {
		b := desc.Nodes[0].OutputStreams[i]
		assert.Equal(t, "OUT", b.Tag)
		assert.Equal(t, i, b.Index)
		assert.True(t, b.Indexed)
		assert.Equal(t, fmt.Sprintf("__stream_%d", i), b.Name)
	}
	// The graph-role count matches the serialized record.
	assert.Equal(t, n, node.Outs.Count())
	assert.Equal(t, n, desc.Nodes[0].CountOf(engine.KindOutput, "OUT"))
}

func TestBuilder_BackEdge(t *testing.T) {
	g := New("loop")
	in := In[string](g, "in")

	node := AddNode[loopContract](g, "Accumulator")
	node.In.Set(in)
	node.State.SetBackEdge(node.Next.StreamNamed("state"))
	Out(g, node.Out.StreamNamed("out"))

	desc, err := g.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"STATE:0"}, desc.Nodes[0].BackEdges)
}

func TestBuilder_GraphRoot(t *testing.T) {
	type boundary struct {
		Feed   port.Input[string]    `flow:"feed"`
		Result port.Output[string]   `flow:"result"`
		Config port.SideInput[int64] `flow:"config"`
	}

	g := New("rooted")
	root := AddRoot[boundary](g)

	node := AddNode[passContract](g, "Passthrough")
	node.In.Set(root.Feed.Stream())
	root.Result.Set(node.Out.StreamNamed("result"))

	side := AddNode[sideConsumerContract](g, "Consumer")
	side.Cfg.Set(root.Config.Side())
	side.In.Set(node.Out.Stream())

	desc, err := g.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"feed"}, desc.InputStreams)
	assert.Equal(t, []string{"result"}, desc.OutputStreams)
	assert.Equal(t, []string{"config"}, desc.InputSidePackets)
	assert.Equal(t, "feed", desc.Nodes[0].InputStreams[0].Name)
}

type sideConsumerContract struct {
	In  port.Input[string]    `flow:"IN"`
	Cfg port.SideInput[int64] `flow:"CFG"`
}

func TestAddGenerator(t *testing.T) {
	t.Run("side channels and options only", func(t *testing.T) {
		g := New("gen")
		gen := AddGenerator[sideGenContract](g, "PathGenerator")
		require.NoError(t, gen.Opts.Set(genOpts{Root: "/models"}))
		SideOut(g, gen.Path.SideNamed("model_path"))

		desc, err := g.Config()
		require.NoError(t, err)
		require.Len(t, desc.Generators, 1)
		assert.Equal(t, "PATH:model_path", desc.Generators[0].OutputSidePackets[0].String())
		assert.Equal(t, []string{"model_path"}, desc.OutputSidePackets)
		require.Len(t, desc.Generators[0].Options, 1)
	})

	t.Run("stream ports are rejected", func(t *testing.T) {
		g := New("gen")
		AddGenerator[passContract](g, "Streamy")
		_, err := g.Config()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generators may only declare side channels")
	})
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("unregistered calculator", func(t *testing.T) {
		reg := registry.New()
		g := New("checked", WithRegistry(reg))
		in := In[string](g, "in")
		node := AddNode[passContract](g, "Unknown")
		node.In.Set(in)
		Out(g, node.Out.Stream())

		_, err := g.Config()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `node "Unknown": calculator is not registered`)
	})

	t.Run("required input left unwired", func(t *testing.T) {
		g := New("incomplete")
		node := AddNode[passContract](g, "Passthrough")
		Out(g, node.Out.Stream())

		_, err := g.Config()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `required input "IN" is not wired`)
	})

	t.Run("zero stream handle as output", func(t *testing.T) {
		g := New("zero")
		Out(g, port.Stream[string]{})
		_, err := g.Config()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "zero stream handle")
	})
}
