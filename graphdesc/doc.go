// Package graphdesc defines the graph description: the serializable output
// of graph construction and the input the external execution engine runs.
//
// A description is an ordered list of node records. Each record names a
// calculator and binds its ports to streams and side packets using the
// textual "TAG:index:name" convention. The package also provides the HCL
// encoding used as the canonical text form, a YAML export for interop, and
// a blake3 fingerprint over the canonical bytes so identical construction
// sequences can be recognized cheaply.
package graphdesc
