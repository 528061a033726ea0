// Package registry pairs contract shapes with the calculator names used to
// look up implementations and to populate graph descriptions.
//
// Registration is an explicit startup step with defined ordering, not a
// static-initialization side effect. Populating the registry and then
// calling Validate ensures every registered shape passes validation and a
// contract-build dry run before any graph references it, so an entire
// class of wiring mistakes is caught before execution starts.
package registry
