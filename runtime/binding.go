package runtime

import (
	"context"
	"log/slog"

	"github.com/vk/flowgrid/engine"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/port"
)

// Binding is the execution-role adapter for a contract shape C. Its
// lifecycle per invocation is Unbound, Bound, Unbound; a second Bind while
// bound, or port use while unbound, is a logic error and panics.
type Binding[C any] struct {
	contract *C
	inst     *port.Instance
	inv      *engine.InvocationContext
}

// New reflects a fresh contract instance for repeated use across
// invocations of one node.
func New[C any]() (*Binding[C], error) {
	contract := new(C)
	inst, err := port.NewInstance(contract)
	if err != nil {
		return nil, err
	}
	return &Binding[C]{contract: contract, inst: inst}, nil
}

// Contract returns the typed contract whose ports read and write through
// the currently bound invocation.
func (b *Binding[C]) Contract() *C { return b.contract }

// Bind backs every port with inv for the duration of one invocation.
func (b *Binding[C]) Bind(inv *engine.InvocationContext) {
	b.inst.ActivateExecute(inv)
	b.inv = inv
}

// Unbind releases the current invocation. Every Bind must be paired with
// an Unbind before the next invocation begins.
func (b *Binding[C]) Unbind() {
	b.inst.Deactivate()
	b.inv = nil
}

// Bound reports whether an invocation is currently bound.
func (b *Binding[C]) Bound() bool { return b.inv != nil }

func (b *Binding[C]) mustInv() *engine.InvocationContext {
	if b.inv == nil {
		panic("runtime: binding used while unbound")
	}
	return b.inv
}

// Timestamp returns the input timestamp of the current invocation.
func (b *Binding[C]) Timestamp() engine.Timestamp {
	return b.mustInv().Timestamp()
}

// Service looks up a capability service provided by the engine.
func (b *Binding[C]) Service(key string) (any, bool) {
	return b.mustInv().Service(key)
}

// Resource returns the engine's resource-access handle.
func (b *Binding[C]) Resource() any {
	return b.mustInv().Resource()
}

// Logger extracts the invocation logger from ctx, or the default logger.
func (b *Binding[C]) Logger(ctx context.Context) *slog.Logger {
	return ctxlog.FromContext(ctx)
}
