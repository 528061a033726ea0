package port

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
)

// Instance is one contract struct with its reflected field list and the
// shared role back-reference. Constructing an Instance is the only way a
// contract's ports come to life; authors never enumerate fields by hand.
type Instance struct {
	shape  any
	fields []Field
	bind   *binding
}

// NewInstance reflects over a pointer-to-struct contract shape, wiring
// every exported port field to a shared, not-yet-activated back-reference.
// Field order follows declaration order. Exported non-port fields are a
// shape error; unexported fields are ignored.
func NewInstance(shape any) (*Instance, error) {
	v := reflect.ValueOf(shape)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("contract shape must be a non-nil pointer to struct, got %T", shape)
	}
	el := v.Elem()
	t := el.Type()

	bind := &binding{role: RoleNone}
	inst := &Instance{shape: shape, bind: bind}
	var errs []string
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f, ok := el.Field(i).Addr().Interface().(Field)
		if !ok {
			errs = append(errs, fmt.Sprintf("field %d (%s): type %s is not a port type", i, sf.Name, sf.Type))
			continue
		}
		tag := strings.Split(sf.Tag.Get("flow"), ",")[0]
		if err := f.init(tag, bind); err != nil {
			errs = append(errs, fmt.Sprintf("field %d (%s): %v", i, sf.Name, err))
			continue
		}
		inst.fields = append(inst.fields, f)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("contract shape %s is invalid:\n- %s", t, strings.Join(errs, "\n- "))
	}
	return inst, nil
}

// Fields returns ordered, addressable references to every declared port.
func (in *Instance) Fields() []Field { return in.fields }

// Shape returns the contract struct the instance reflects over.
func (in *Instance) Shape() any { return in.shape }

// Role returns the currently active role.
func (in *Instance) Role() Role { return in.bind.role }

func (in *Instance) activate(role Role) {
	if in.bind.role != RoleNone {
		panic(fmt.Sprintf("contract instance already bound in role %s; unbind before re-binding", in.bind.role))
	}
	in.bind.role = role
}

// ActivateSpec backs the instance's ports with a raw contract object.
func (in *Instance) ActivateSpec(spec *engine.ContractSpec) {
	in.activate(RoleContractSpec)
	in.bind.spec = spec
}

// ActivateExecute backs the instance's ports with one invocation's raw
// runtime object. A second activation without an intervening Deactivate is
// a programmer error.
func (in *Instance) ActivateExecute(inv *engine.InvocationContext) {
	in.activate(RoleExecute)
	in.bind.inv = inv
}

// ActivateGraph backs the instance's ports with a node record under
// construction (RoleGraphNode, RoleGraphGenerator) or with the graph's own
// boundary (RoleGraphRoot, node may be nil).
func (in *Instance) ActivateGraph(role Role, node *graphdesc.Node, gb GraphBackend) {
	switch role {
	case RoleGraphNode, RoleGraphRoot, RoleGraphGenerator:
	default:
		panic(fmt.Sprintf("ActivateGraph called with non-graph role %s", role))
	}
	in.activate(role)
	in.bind.node = node
	in.bind.gb = gb
}

// Deactivate releases the current role so the instance can be re-bound.
// Deactivating an unbound instance is a programmer error.
func (in *Instance) Deactivate() {
	if in.bind.role == RoleNone {
		panic("contract instance is not bound")
	}
	in.bind.role = RoleNone
	in.bind.spec = nil
	in.bind.inv = nil
	in.bind.node = nil
	in.bind.gb = nil
}
