package engine

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// PortSpec is the registration record for one port: its address, payload
// type and cardinality as declared by the contract.
type PortSpec struct {
	Key      PortKey
	Type     cty.Type
	OneOf    []cty.Type
	Optional bool
	Repeated bool
}

// StreamHandler names the engine-side input stream handler assigned to a
// node, with an opaque options payload.
type StreamHandler struct {
	Name    string
	Options any
}

// SameAs declares that the concrete payload type of From must equal the
// concrete payload type of To once both are known. Used by type-erased
// ports to tie two ends of a generic node together.
type SameAs struct {
	From PortKey
	To   PortKey
}

// ContractSpec is the raw contract object a node's ports are registered
// against at contract-build time. The engine consumes the finished spec; the
// typed layer in package port populates it.
type ContractSpec struct {
	calculator string
	ports      map[PortKey]*PortSpec
	order      []PortKey
	connected  map[PortKey]bool

	sameAs        []SameAs
	streamHandler *StreamHandler
	executor      string
	tsOffset      *int64
	services      []string
}

// NewContractSpec creates an empty spec for the named calculator.
func NewContractSpec(calculator string) *ContractSpec {
	return &ContractSpec{
		calculator: calculator,
		ports:      make(map[PortKey]*PortSpec),
		connected:  make(map[PortKey]bool),
	}
}

// Calculator returns the registration name the spec was created for.
func (s *ContractSpec) Calculator() string { return s.calculator }

// AddPort registers one port. Registering the same (kind, tag, index)
// twice is an error; the shape validator reports duplicates with more
// context, this is the engine-level backstop.
func (s *ContractSpec) AddPort(ps PortSpec) error {
	if _, exists := s.ports[ps.Key]; exists {
		return fmt.Errorf("engine: port %s %q already registered", ps.Key.Kind, ps.Key)
	}
	cp := ps
	s.ports[ps.Key] = &cp
	s.order = append(s.order, ps.Key)
	return nil
}

// Port looks up the registration record for key.
func (s *ContractSpec) Port(key PortKey) (*PortSpec, bool) {
	ps, ok := s.ports[key]
	return ps, ok
}

// Ports returns all registered ports in registration order.
func (s *ContractSpec) Ports() []*PortSpec {
	out := make([]*PortSpec, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.ports[key])
	}
	return out
}

// Count returns how many indices are registered under (kind, tag).
func (s *ContractSpec) Count(kind Kind, tag string) int {
	n := 0
	for _, key := range s.order {
		if key.Kind == kind && key.Tag == tag {
			n++
		}
	}
	return n
}

// MarkConnected records that the surrounding graph wires the given port.
// The engine populates this from the graph description before the contract
// is handed to the node.
func (s *ContractSpec) MarkConnected(key PortKey) {
	s.connected[key] = true
}

// Connected reports whether the surrounding graph wires key.
func (s *ContractSpec) Connected(key PortKey) bool {
	return s.connected[key]
}

// ConnectedCount returns the number of wired indices under (kind, tag), the
// backing value for a repeated port's Count in the contract-build role.
func (s *ContractSpec) ConnectedCount(kind Kind, tag string) int {
	max := 0
	for key := range s.connected {
		if key.Kind == kind && key.Tag == tag && key.Index+1 > max {
			max = key.Index + 1
		}
	}
	return max
}

// SetSameAs records a same-as constraint between two ports.
func (s *ContractSpec) SetSameAs(from, to PortKey) {
	s.sameAs = append(s.sameAs, SameAs{From: from, To: to})
}

// SameAsConstraints returns the recorded same-as constraints.
func (s *ContractSpec) SameAsConstraints() []SameAs { return s.sameAs }

// SetInputStreamHandler assigns the node's input stream handler.
func (s *ContractSpec) SetInputStreamHandler(name string, options any) {
	s.streamHandler = &StreamHandler{Name: name, Options: options}
}

// InputStreamHandler returns the assigned stream handler, if any.
func (s *ContractSpec) InputStreamHandler() *StreamHandler { return s.streamHandler }

// SetExecutor names the executor the node's work should run on.
func (s *ContractSpec) SetExecutor(name string) { s.executor = name }

// Executor returns the assigned executor name, empty when unset.
func (s *ContractSpec) Executor() string { return s.executor }

// SetTimestampOffset declares the node's fixed output timestamp offset, an
// optimization hint consumed by the engine's timestamp-bound arithmetic.
func (s *ContractSpec) SetTimestampOffset(offset int64) { s.tsOffset = &offset }

// TimestampOffset returns the declared offset and whether one was set.
func (s *ContractSpec) TimestampOffset() (int64, bool) {
	if s.tsOffset == nil {
		return 0, false
	}
	return *s.tsOffset, true
}

// RequireService records that the node needs the named capability service
// at execution time.
func (s *ContractSpec) RequireService(key string) {
	s.services = append(s.services, key)
}

// Services returns the required capability service keys in declaration order.
func (s *ContractSpec) Services() []string { return s.services }

// Resolve applies all same-as constraints. A constraint between a concrete
// and a dynamic port adopts the concrete type on the dynamic side; two
// concrete ends must unify to a single type. All violations are collected
// into one aggregated error so a single pass reports every problem.
func (s *ContractSpec) Resolve() error {
	var errs []string
	for _, c := range s.sameAs {
		from, ok := s.ports[c.From]
		if !ok {
			errs = append(errs, fmt.Sprintf("same-as source %q is not a registered port", c.From))
			continue
		}
		to, ok := s.ports[c.To]
		if !ok {
			errs = append(errs, fmt.Sprintf("same-as target %q is not a registered port", c.To))
			continue
		}
		switch {
		case from.Type.Equals(cty.DynamicPseudoType) && to.Type.Equals(cty.DynamicPseudoType):
			// Both still erased; nothing to propagate yet.
		case from.Type.Equals(cty.DynamicPseudoType):
			from.Type = to.Type
		case to.Type.Equals(cty.DynamicPseudoType):
			to.Type = from.Type
		default:
			if !from.Type.Equals(to.Type) {
				errs = append(errs, fmt.Sprintf("same-as constraint %q = %q: %s does not match %s",
					c.From, c.To, from.Type.FriendlyName(), to.Type.FriendlyName()))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("contract %q type resolution failed:\n- %s", s.calculator, strings.Join(errs, "\n- "))
	}
	return nil
}
