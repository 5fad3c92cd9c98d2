// Package ea implements the effective-address analyser of spec.md §4.3:
// register extraction and legality (Phase A), ModR/M/SIB selection
// (Phase B), displacement-length selection (Phase C), and REX-bit
// derivation from registers (Phase D).
//
// Grounded on architecture/x86_64/operands.go and instruction_encoding.go,
// which carry the same base/index/scale/displacement fields flattened onto
// a single struct rather than a class hierarchy. Per the design notes'
// guidance (spec.md §9), the expression distribution step ("IntNum * (reg +
// reg + …)") is expected to already have run by the time it reaches this
// package: Expr is the flattened sum-of-terms form, built by the frontend's
// expression simplifier, not a generic mutable tree the analyser must walk.
package ea

import (
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// Term is a single `register * multiplier` summand of a flattened address
// expression.
type Term struct {
	Reg  reg.Register
	Mult int
}

// Expr is the flattened effective-address expression: a sum of register
// terms plus a displacement tail. WRT names the register used in an
// explicit `WRT reg` clause (only "rip" is legal); XformRipPlus mirrors the
// AT&T-dialect parser flag that treats a bare `expr+rip` the same as
// `expr WRT rip`.
type Expr struct {
	Terms        []Term
	Disp         value.Expr
	HasDisp      bool
	DispSizeBits int // 0 = unspecified
	DispRelative bool // displacement is IP-relative, not an absolute value
	WRT          string
	XformRipPlus bool
}

// accumulated is the per-register multiplier sum produced by folding Terms
// (spec.md §4.3 Phase A step 4): "accumulate per-register multipliers".
type accumulated struct {
	reg  reg.Register
	mult int
}

// accumulate sums multipliers for repeated registers and drops zero-sum
// terms, preserving first-seen order so diagnostics are deterministic.
func accumulate(terms []Term) []accumulated {
	var out []accumulated
	index := map[reg.Register]int{}
	for _, t := range terms {
		if i, ok := index[t.Reg]; ok {
			out[i].mult += t.Mult
			continue
		}
		index[t.Reg] = len(out)
		out = append(out, accumulated{reg: t.Reg, mult: t.Mult})
	}
	nonzero := out[:0]
	for _, a := range out {
		if a.mult != 0 {
			nonzero = append(nonzero, a)
		}
	}
	return nonzero
}

// decomposeMultiplier splits a legal but non-power-of-two multiplier into a
// base contribution (mult 1) and an index scale, per spec.md §4.3 Phase A
// step 4: "3, 5, and 9 are decomposed as base=index, scale={2,4,8}".
// ok is false for any multiplier outside the legal set {0,1,2,3,4,5,8,9}.
func decomposeMultiplier(mult int) (asBase bool, scale int, ok bool) {
	switch mult {
	case 1:
		return true, 0, true
	case 2, 4, 8:
		return false, mult, true
	case 3:
		return true, 2, true
	case 5:
		return true, 4, true
	case 9:
		return true, 8, true
	default:
		return false, 0, false
	}
}
