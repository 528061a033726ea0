package engine

import "fmt"

// InvocationContext is the raw runtime object backing one invocation of a
// node (Open, a single Process call, or Close). The engine constructs one
// from the graph description and the packets currently available; the typed
// port layer binds to it for the duration of the invocation and reads and
// writes through it.
//
// The engine guarantees invocations of one node never overlap, so the
// context needs no internal locking.
type InvocationContext struct {
	ts        Timestamp
	inputs    map[PortKey]Packet
	connected map[PortKey]bool
	options   map[PortKey]any

	outputs   map[PortKey][]Packet
	closed    map[PortKey]bool
	nextBound map[PortKey]Timestamp

	services map[string]any
	resource any
}

// NewInvocationContext creates an empty context at the given timestamp.
func NewInvocationContext(ts Timestamp) *InvocationContext {
	return &InvocationContext{
		ts:        ts,
		inputs:    make(map[PortKey]Packet),
		connected: make(map[PortKey]bool),
		options:   make(map[PortKey]any),
		outputs:   make(map[PortKey][]Packet),
		closed:    make(map[PortKey]bool),
		nextBound: make(map[PortKey]Timestamp),
	}
}

// Timestamp returns the input timestamp of the current invocation.
func (c *InvocationContext) Timestamp() Timestamp { return c.ts }

// AddInput supplies the packet available on an input or side-input port for
// this invocation and marks the port connected.
func (c *InvocationContext) AddInput(key PortKey, p Packet) {
	c.inputs[key] = p
	c.connected[key] = true
}

// MarkConnected records that a port is wired in the surrounding graph even
// though no packet is available at the current timestamp.
func (c *InvocationContext) MarkConnected(key PortKey) {
	c.connected[key] = true
}

// Input returns the packet available on key, if any.
func (c *InvocationContext) Input(key PortKey) (Packet, bool) {
	p, ok := c.inputs[key]
	return p, ok
}

// Connected reports whether key is wired in the surrounding graph.
func (c *InvocationContext) Connected(key PortKey) bool {
	return c.connected[key]
}

// CountOf returns the number of indices bound under (kind, tag), the
// backing value for a repeated port's Count during execution.
func (c *InvocationContext) CountOf(kind Kind, tag string) int {
	max := 0
	for key := range c.connected {
		if key.Kind == kind && key.Tag == tag && key.Index+1 > max {
			max = key.Index + 1
		}
	}
	for key := range c.outputs {
		if key.Kind == kind && key.Tag == tag && key.Index+1 > max {
			max = key.Index + 1
		}
	}
	return max
}

// SetOptions attaches the node's inlined configuration payload for an
// options port.
func (c *InvocationContext) SetOptions(key PortKey, v any) {
	c.options[key] = v
}

// Options returns the configuration payload attached to key.
func (c *InvocationContext) Options(key PortKey) (any, bool) {
	v, ok := c.options[key]
	return v, ok
}

// Emit publishes a packet on an output or side-output port at the current
// timestamp. Emitting on a closed port is an error.
func (c *InvocationContext) Emit(key PortKey, p Packet) error {
	if c.closed[key] {
		return fmt.Errorf("engine: output %s %q is closed", key.Kind, key)
	}
	if p.Timestamp() == TimestampUnset {
		p = p.At(c.ts)
	}
	c.outputs[key] = append(c.outputs[key], p)
	c.connected[key] = true
	return nil
}

// Outputs returns the packets emitted on key during this invocation, in
// send order.
func (c *InvocationContext) Outputs(key PortKey) []Packet {
	return c.outputs[key]
}

// Close ends an output stream early. Further Emit calls on key fail.
func (c *InvocationContext) Close(key PortKey) {
	c.closed[key] = true
}

// Closed reports whether key has been closed.
func (c *InvocationContext) Closed(key PortKey) bool {
	return c.closed[key]
}

// SetNextTimestampBound declares how far into the future key is guaranteed
// to produce nothing, an optimization hint for the engine.
func (c *InvocationContext) SetNextTimestampBound(key PortKey, ts Timestamp) {
	c.nextBound[key] = ts
}

// NextTimestampBound returns the declared bound for key, TimestampUnset
// when none was declared.
func (c *InvocationContext) NextTimestampBound(key PortKey) Timestamp {
	if ts, ok := c.nextBound[key]; ok {
		return ts
	}
	return TimestampUnset
}

// SetService exposes a capability service to the node under a string key.
func (c *InvocationContext) SetService(key string, svc any) {
	if c.services == nil {
		c.services = make(map[string]any)
	}
	c.services[key] = svc
}

// Service looks up a capability service by key.
func (c *InvocationContext) Service(key string) (any, bool) {
	svc, ok := c.services[key]
	return svc, ok
}

// SetResource attaches the engine's resource-access handle.
func (c *InvocationContext) SetResource(r any) { c.resource = r }

// Resource returns the engine's resource-access handle, nil when absent.
func (c *InvocationContext) Resource() any { return c.resource }
