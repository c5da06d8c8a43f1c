// Package vars implements the calculator variable file format: the
// 53-byte file header, the variable entry records it carries, and the
// typed views over entry data (reals, lists, matrices, programs, graph
// databases and the rest).
//
// A File is a header plus an ordered sequence of entries followed by a
// checksum. Parsing is strict by default and byte-exact on round trip:
// ParseFile followed by Bytes reproduces the input when the input is
// well formed. Derived quantities, the entry length and the checksum,
// are never stored; they are recomputed on every serialization so a
// mutated file can never carry a stale footer.
//
// Typed views such as RealVar or GDB wrap an *Entry without copying its
// data. Mutating through a view mutates the entry, and the entry's
// Bytes output, directly.
package vars
