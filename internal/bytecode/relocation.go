// Package bytecode implements the caller-owned bytecode container of
// spec.md §6/§9: a sequence of fixed-byte items and pending span-resolved
// items, plus the relocation records handed to an outer object-writer for
// any value that still references an unresolved symbol.
//
// Grounded on v0/kasm/codegen_encode.go and v0/kasm/codegen_passes.go,
// which hold the same fixed-vs-deferred emission split; generalised here
// into a small tagged-sum interface (Spannable) rather than the teacher's
// ad hoc pass-specific structs, per the design notes' guidance to model
// bytecodes as a Go interface, not a class hierarchy.
package bytecode

import "github.com/keurnel/x86enc/internal/encoder/value"

// Relocation is an emitted Value that still references an unresolved
// symbol: the object-writer resolves it once every symbol's address is
// known (out of scope here; spec.md §1 Non-goals excludes symbol
// resolution and object-file emission).
type Relocation struct {
	Value  value.Value
	Offset int // byte offset within the section where this value starts
}
