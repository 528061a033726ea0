// Package runtime binds a contract shape to one invocation's raw runtime
// object, giving the node's processing routine typed read and write access
// to its ports.
//
// A Binding is created once per node instance and re-bound in place across
// invocations: Bind, use, Unbind brackets every Open, Process and Close
// call, so stale back-references cannot leak between invocations. The
// engine guarantees invocations of one node never overlap; the binding
// itself imposes no threading guarantee and keeps no thread-affine state.
package runtime
