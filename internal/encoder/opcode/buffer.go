// Package opcode implements the Opcode buffer of spec.md §4.1: up to three
// raw opcode bytes plus length, with the add/mask/merge/alternate-encoding
// operations InsnForm modifier recipes apply to it.
//
// Grounded on architecture/x86_64/instruction_encoding.go, which holds the
// same byte-level opcode/ModR/M helpers; generalised here into a dedicated
// value type per the design notes' "keep it a small immutable-looking
// struct, not a class hierarchy" guidance.
package opcode

// Buffer is Opcode: [u8; 3] plus len in 1..=3.
type Buffer struct {
	Bytes [3]byte
	Len   int
}

// New returns a Buffer initialised from the given opcode bytes (at most 3).
func New(bytes ...byte) Buffer {
	var b Buffer
	b.Len = copy(b.Bytes[:], bytes)
	return b
}

// Add performs bytes[i] += v, wrapping.
func (b *Buffer) Add(i int, v byte) { b.Bytes[i] += v }

// Mask performs bytes[i] &= m.
func (b *Buffer) Mask(i int, m byte) { b.Bytes[i] &= m }

// Merge performs bytes[i] |= v.
func (b *Buffer) Merge(i int, v byte) { b.Bytes[i] |= v }

// MakeAlt1 copies bytes[len] to bytes[0] and sets len=1. Used when a form
// stores an imm8-range primary plus a one-byte non-imm8 alternate
// immediately after it (e.g. the PUSH imm8/imm32 pair).
func (b *Buffer) MakeAlt1() {
	b.Bytes[0] = b.Bytes[b.Len]
	b.Len = 1
}

// MakeAlt2 shifts bytes [1,2] to [0,1] and sets len=2. Used to shorten a
// three-byte VEX prefix to the two-byte form.
func (b *Buffer) MakeAlt2() {
	b.Bytes[0] = b.Bytes[1]
	b.Bytes[1] = b.Bytes[2]
	b.Len = 2
}

// ToBytes appends Len bytes to out.
func (b *Buffer) ToBytes(out []byte) []byte {
	return append(out, b.Bytes[:b.Len]...)
}
