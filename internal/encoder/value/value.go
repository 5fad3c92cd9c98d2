// Package value implements Value (spec.md §3) and the relocation interface
// exposed to the outer object-writer (spec.md §6): every emitted immediate
// or displacement that references a symbol is attached as a Value.
package value

// Expr is the minimal symbolic expression a Value can carry: either a
// resolved integer or an unresolved symbolic tail. The encoder never
// resolves symbol values (spec.md §1 Non-goals); it only classifies
// whether an expression IS already a known integer.
type Expr struct {
	Known   bool
	Integer int64
	Symbol  string // non-empty when !Known
}

// KnownInt returns an Expr wrapping a resolved integer.
func KnownInt(v int64) Expr { return Expr{Known: true, Integer: v} }

// Unresolved returns an Expr wrapping a bare symbolic reference.
func Unresolved(symbol string) Expr { return Expr{Symbol: symbol} }

// Value is {expression, size-in-bits, signedness, relative?, jump-target?,
// insn-start offset, next-insn offset, source-location}. Sizes in bits are
// 0/8/16/32/64 only.
type Value struct {
	Expr           Expr
	SizeBits       int
	Signed         bool
	Relative       bool // IP-relative (jump targets, RIP-relative EA)
	JumpTarget     bool
	InsnStartOff   int // offset of this value from the start of its instruction
	NextInsnOff    int // offset from the end of this value to the end of the instruction; 0 for jumps
	SourceLocation string
}

// NeedsRelocation reports whether this value references an unresolved
// symbol and so must be handed to the outer object-writer as a relocation.
func (v Value) NeedsRelocation() bool { return !v.Expr.Known }
