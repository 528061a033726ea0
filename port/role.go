package port

import (
	"fmt"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/graphdesc"
)

// Role selects which backing object a contract instance's ports operate
// against. Exactly one role is active per instance at a time.
type Role int

const (
	// RoleNone is the state between activations.
	RoleNone Role = iota
	// RoleContractSpec backs ports with an engine.ContractSpec for
	// contract-build registration and validation.
	RoleContractSpec
	// RoleExecute backs ports with an engine.InvocationContext for one
	// invocation of the node.
	RoleExecute
	// RoleGraphNode backs ports with a node record under construction.
	RoleGraphNode
	// RoleGraphRoot backs ports with the graph's own external endpoints.
	RoleGraphRoot
	// RoleGraphGenerator is the legacy side-channel-only builder variant.
	RoleGraphGenerator
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleContractSpec:
		return "contract-spec"
	case RoleExecute:
		return "execute"
	case RoleGraphNode:
		return "graph-node"
	case RoleGraphRoot:
		return "graph-root"
	case RoleGraphGenerator:
		return "graph-generator"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// GraphBackend is what a graph builder provides to ports activated in a
// graph role: deterministic names for anonymous streams and registration of
// the pipeline's external endpoints.
type GraphBackend interface {
	NextStreamName() string
	NextSidePacketName() string
	AddGraphInput(name string)
	AddGraphOutput(name string)
	AddGraphSideInput(name string)
	AddGraphSideOutput(name string)
}

// binding is the back-reference every port of one contract instance shares.
// The pointer is set exactly once, when the instance is constructed; its
// contents change as roles are activated and deactivated.
type binding struct {
	role Role
	spec *engine.ContractSpec
	inv  *engine.InvocationContext
	node *graphdesc.Node
	gb   GraphBackend
}
