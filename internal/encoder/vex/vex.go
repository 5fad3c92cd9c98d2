// Package vex implements the VEX/XOP prefix transform of spec.md §4.7:
// given the REX bits and WLpp fields a form's special prefix decodes to,
// build the 2-or-3-byte VEX or 3-byte XOP prefix and apply the "shorten to
// two-byte VEX" rule.
//
// Grounded on architecture/x86_64/instruction_prefix.go's REX-assembly
// style (bit-packing into named byte constants); no teacher file handles
// VEX since the teacher's instruction table does not yet define any AVX
// forms, so this package is built directly from §4.7's byte layout.
package vex

import "github.com/keurnel/x86enc/internal/encoder/opcode"

// Kind distinguishes the VEX and XOP prefix families; they share byte
// layout but differ in which raw opcode byte supplies mmmmm and whether
// the two-byte shortening rule applies.
type Kind int

const (
	KindVEX Kind = iota
	KindXOP
)

// PP is the VEX.pp mandatory-prefix field.
type PP byte

const (
	PPNone PP = 0
	PP66   PP = 1
	PPF3   PP = 2
	PPF2   PP = 3
)

// Fields is the WLpp decoding of a form's special prefix byte plus the
// REX bits already computed by the general encoder.
type Fields struct {
	Kind   Kind
	W      bool
	L256   bool // false = 128-bit (L=0), true = 256-bit (L=1)
	PP     PP
	MMMMM  byte // escape-byte selector: 1 = 0x0F, 2 = 0x0F 0x38, 3 = 0x0F 0x3A (XOP: 0x08/0x09/0x0A raw)
	RexR   byte // REX.R extension bit (0/1), inverted into the prefix
	RexX   byte
	RexB   byte
	Vvvv   byte // 4-bit VEX.vvvv register field, already inverted-free (this package inverts it)
}

// Build returns only the VEX/XOP prefix bytes for the given fields. It
// neither reads nor modifies op: removing the escape bytes that mmmmm
// encodes from the opcode is left to the caller.
func Build(f Fields, op *opcode.Buffer) []byte {
	lpp := lppByte(f.L256, f.PP)
	byte2 := (boolBit(f.W) << 7) | ((^f.Vvvv & 0xF) << 3) | lpp

	if f.Kind == KindVEX && canShorten(f) {
		b0 := 0xC5
		b1 := (invertBit(f.RexR) << 7) | ((^f.Vvvv & 0xF) << 3) | lpp
		return []byte{byte(b0), b1}
	}

	first := byte(0xC4)
	if f.Kind == KindXOP {
		first = 0x8F
	}
	byte1 := 0xE0 | (invertRXB(f.RexR, f.RexX, f.RexB) << 5) | f.MMMMM
	return []byte{first, byte(byte1), byte2}
}

// canShorten reports whether a 3-byte VEX may shorten to 2 bytes: REX.X,
// REX.B, and REX.W are all 0 and mmmmm selects the single 0x0F escape.
func canShorten(f Fields) bool {
	return f.RexX == 0 && f.RexB == 0 && !f.W && f.MMMMM == 1
}

func lppByte(l256 bool, pp PP) byte {
	l := byte(0)
	if l256 {
		l = 1
	}
	return (l << 2) | byte(pp)
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func invertBit(b byte) byte { return ^b & 1 }

func invertRXB(r, x, b byte) byte {
	return (invertBit(r) << 2) | (invertBit(x) << 1) | invertBit(b)
}
