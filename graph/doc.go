// Package graph constructs pipeline descriptions from typed contracts.
//
// A Builder is single-threaded and used once, before execution: nodes are
// added with AddNode, wired through their contract's ports, and the
// finished, immutable description is obtained from Config. Anonymous
// intermediate streams are named deterministically in creation order, so
// the same construction sequence always serializes identically.
package graph
