// Package app wires the process together: it configures logging, registers
// calculator modules, validates the registry, and inspects graph
// description files.
package app
