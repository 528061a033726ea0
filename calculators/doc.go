// Package calculators provides the built-in calculator set: small,
// broadly useful nodes registered as one module. They double as reference
// implementations of the contract idioms: type-erased passthrough,
// optional inputs, repeated inputs and side-packet constants.
package calculators
