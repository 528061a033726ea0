// Package engine defines the raw objects this layer exchanges with the
// underlying dataflow execution engine: timestamps, packets, the contract
// object a node registers its ports against, and the per-invocation runtime
// context a node reads inputs from and writes outputs to.
//
// The engine itself (scheduling, queueing, dispatch) lives outside this
// module. Everything here is the boundary surface: the typed port layer in
// package port produces and consumes these objects, and tests stand in for
// the engine by constructing them directly.
package engine
