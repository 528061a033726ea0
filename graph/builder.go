package graph

import (
	"fmt"

	"github.com/vk/flowgrid/graphdesc"
	"github.com/vk/flowgrid/port"
	"github.com/vk/flowgrid/registry"
)

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry makes the builder cross-check every added node's calculator
// name against a populated registry.
func WithRegistry(r *registry.Registry) Option {
	return func(g *Builder) { g.reg = r }
}

// Builder accumulates node records and the pipeline's external endpoints,
// then serializes them into a graphdesc.Description. Errors found during
// construction are collected and reported together by Config.
type Builder struct {
	desc *graphdesc.Description
	reg  *registry.Registry

	streamSeq int
	sideSeq   int

	nodes []*boundNode
	errs  []string
}

type boundNode struct {
	record *graphdesc.Node
	inst   *port.Instance
}

// New creates a builder for a named pipeline.
func New(name string, opts ...Option) *Builder {
	g := &Builder{desc: &graphdesc.Description{Name: name}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NextStreamName returns the next deterministic anonymous stream name.
func (g *Builder) NextStreamName() string {
	name := fmt.Sprintf("__stream_%d", g.streamSeq)
	g.streamSeq++
	return name
}

// NextSidePacketName returns the next deterministic anonymous side-packet
// name.
func (g *Builder) NextSidePacketName() string {
	name := fmt.Sprintf("__side_packet_%d", g.sideSeq)
	g.sideSeq++
	return name
}

// AddGraphInput declares one of the pipeline's external input streams.
func (g *Builder) AddGraphInput(name string) {
	g.desc.InputStreams = append(g.desc.InputStreams, name)
}

// AddGraphOutput declares one of the pipeline's external output streams.
func (g *Builder) AddGraphOutput(name string) {
	g.desc.OutputStreams = append(g.desc.OutputStreams, name)
}

// AddGraphSideInput declares one of the pipeline's external side packets.
func (g *Builder) AddGraphSideInput(name string) {
	g.desc.InputSidePackets = append(g.desc.InputSidePackets, name)
}

// AddGraphSideOutput declares one of the pipeline's external output side
// packets.
func (g *Builder) AddGraphSideOutput(name string) {
	g.desc.OutputSidePackets = append(g.desc.OutputSidePackets, name)
}

// AddExecutor declares an auxiliary executor nodes can be assigned to.
func (g *Builder) AddExecutor(name, typ string) {
	g.desc.Executors = append(g.desc.Executors, graphdesc.Executor{Name: name, Type: typ})
}

// In declares an external input stream and returns its typed handle.
func In[T any](g *Builder, name string) port.Stream[T] {
	g.AddGraphInput(name)
	return port.NewStream[T](name)
}

// Out declares a produced stream as one of the pipeline's external
// outputs.
func Out[T any](g *Builder, s port.Stream[T]) {
	if s.Name() == "" {
		g.errs = append(g.errs, "graph output declared from a zero stream handle")
		return
	}
	g.AddGraphOutput(s.Name())
}

// SideIn declares an external side packet and returns its typed handle.
func SideIn[T any](g *Builder, name string) port.Side[T] {
	g.AddGraphSideInput(name)
	return port.NewSide[T](name)
}

// SideOut declares a produced side packet as one of the pipeline's
// external side outputs.
func SideOut[T any](g *Builder, s port.Side[T]) {
	if s.Name() == "" {
		g.errs = append(g.errs, "graph side output declared from a zero side handle")
		return
	}
	g.AddGraphSideOutput(s.Name())
}
