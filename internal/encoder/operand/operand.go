// Package operand implements Operand (spec.md §3): the tagged union a
// parsed instruction's operand list is built from.
//
// Grounded on architecture/x86_64/operands.go's OperandType, generalised
// from "a type+size pair describing a table slot" into "the actual parsed
// value the matcher/encoder consume", since the teacher's OperandType
// never needed to hold a live register/expression — its table only
// described shapes, it never modelled parsed instructions.
package operand

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/ea"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// Kind discriminates Operand's tagged union.
type Kind int

const (
	KindNone Kind = iota
	KindReg
	KindSegReg
	KindMem
	KindImm
)

// Operand is `{None, Reg(Register), SegReg(SegmentRegister), Mem(EffAddr),
// Imm(Expr)}` plus the shared attributes of spec.md §3.
type Operand struct {
	Kind Kind
	Reg  reg.Register
	Seg  reg.Segment
	Mem  ea.Expr
	Imm  value.Expr

	SegmentOf        *value.Expr // non-nil when this operand was written SEG(expr)
	TargetMod        reg.TargetModifier
	ExplicitSizeBits int // 0 = unspecified; else one of 8/16/32/64/80/128/256
	Deref            bool
	Strict           bool
	SourceLocation   diag.Location
}

// RegOperand is a convenience constructor for a bare register operand.
func RegOperand(r reg.Register) Operand { return Operand{Kind: KindReg, Reg: r} }

// SegRegOperand is a convenience constructor for a segment-register operand.
func SegRegOperand(s reg.Segment) Operand { return Operand{Kind: KindSegReg, Seg: s} }

// MemOperand is a convenience constructor for a memory operand.
func MemOperand(e ea.Expr) Operand { return Operand{Kind: KindMem, Mem: e, Deref: true} }

// ImmOperand is a convenience constructor for an immediate operand.
func ImmOperand(e value.Expr) Operand { return Operand{Kind: KindImm, Imm: e} }
