package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Options declares an inlined configuration payload of type T attached to
// the node at graph-construction time and read back during execution.
type Options[T any] struct {
	base
}

func (p *Options[T]) init(tag string, bind *binding) error {
	typ, oneOf := payloadOf[T]()
	return p.initBase(engine.KindOptions, tag, bind, typ, oneOf)
}

// Get returns the configuration payload attached to the node. A missing or
// mistyped payload is a recoverable error: it is a property of the graph
// that was built, not of the node's code.
func (p *Options[T]) Get() (T, error) {
	b := p.require(RoleExecute)
	var zero T
	v, ok := b.inv.Options(p.Key())
	if !ok {
		return zero, fmt.Errorf("options %q: no payload attached", p.tag)
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("options %q: payload holds %T, not %T", p.tag, v, zero)
	}
	return out, nil
}

// Set inlines v into the node record under construction. The payload
// travels as JSON-encoded typed data; values the type system cannot
// express are rejected here rather than at serialization time.
func (p *Options[T]) Set(v T) error {
	b := p.require(RoleGraphNode, RoleGraphGenerator)
	if p.payload.Equals(cty.DynamicPseudoType) {
		return fmt.Errorf("options %q: payload type %T cannot be expressed in the type system", p.tag, v)
	}
	val, err := gocty.ToCtyValue(v, p.payload)
	if err != nil {
		return fmt.Errorf("options %q: %w", p.tag, err)
	}
	data, err := ctyjson.Marshal(val, p.payload)
	if err != nil {
		return fmt.Errorf("options %q: %w", p.tag, err)
	}
	b.node.AddOptions(graphdesc.OptionsPayload{TypeName: p.payload.FriendlyName(), Data: data})
	return nil
}
