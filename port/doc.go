// Package port implements the typed node-contract layer: port kinds,
// cardinality wrappers, type-erased payloads, contract reflection, shape
// validation and contract-spec binding.
//
// A contract is an ordinary Go struct whose exported fields are port types
// from this package, tagged with the port's symbolic name:
//
//	type PassThrough struct {
//		In  port.Input[int]     `flow:"IN"`
//		Out port.Output[string] `flow:"OUT"`
//	}
//
// The same declaration is reused, without duplication, across four roles:
// shape validation (Validate), contract-build registration (BindSpec),
// per-invocation runtime access (package runtime) and graph construction
// (package graph). Each role activates the contract's ports against a
// different backing object; a port used outside its active role panics,
// since that is a coding error in the node, not a data condition.
package port
