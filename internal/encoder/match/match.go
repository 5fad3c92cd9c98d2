// Package match implements the instruction-form matcher of spec.md §4.4:
// given a parsed Insn, pick the one static InsnForm in its mnemonic's
// table that fits every operand, retrying at increasing "bypass levels"
// so a near-miss can be blamed on the specific operand that failed.
//
// Grounded on internal/asm.Instruction.Form/formsByOperandType's
// table-walk shape (iterate Forms, test each against one property of the
// call), generalised from "match by one operand's identifier" to the full
// multi-gate test of spec.md §4.4; no teacher file implements operand-size
// or CPU-feature matching at all, so that part is built fresh from the
// spec prose.
package match

import (
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/table"
)

// MaxBypass is the highest bypass level the matcher retries at (spec.md
// §4.4: "bypass level 0..8").
const MaxBypass = 8

// Result is a form that matched, plus whether the GAS operand-reversal
// view was used to find it.
type Result struct {
	Form     table.InsnForm
	FormIdx  int
	Reversed bool
}

// Blame describes a failed match: the first relaxed bypass level at which
// some form matched (0 when none did), and the first operand index that
// fails against form 0 at bypass 0 — the diagnostic hint spec.md §4.4
// calls for.
type Blame struct {
	BypassLevel  int
	OperandIndex int
}

// Match iterates in.Forms in table order and returns the first form that
// matches every gate of spec.md §4.4 at bypass level 0; ok is true only
// for such a form. When none matches, the relaxed levels 1..8 are tried
// only to fill in blame: the first level at which some form matches, and
// the first operand index that fails against form 0 at bypass 0.
func Match(in *insn.Insn) (Result, Blame, bool) {
	blame := firstFailure(in)
	for bypass := 0; bypass <= MaxBypass; bypass++ {
		for i, f := range in.Forms {
			if _, reversed, ok := tryForm(in, f, bypass); ok {
				if bypass == 0 {
					return Result{Form: f, FormIdx: i, Reversed: reversed}, Blame{}, true
				}
				blame.BypassLevel = bypass
				return Result{}, blame, false
			}
		}
	}
	return Result{}, blame, false
}

// firstFailure finds the operand index that fails to match form 0 at the
// strictest bypass level, for diagnostic reporting when nothing matches.
func firstFailure(in *insn.Insn) Blame {
	if len(in.Forms) == 0 || len(in.Operands) == 0 {
		return Blame{}
	}
	f := in.Forms[0]
	for i := range in.Operands {
		if i >= len(f.Operands) {
			return Blame{OperandIndex: i}
		}
		if !operandMatches(in.Operands[i], f.Operands[i], 0) {
			return Blame{OperandIndex: i}
		}
	}
	return Blame{}
}

// tryForm tests f against in at the given bypass level, applying GAS
// operand reversal (spec.md §4.4 "GAS operand reversal") when the dialect
// and form flags call for it.
func tryForm(in *insn.Insn, f table.InsnForm, bypass int) ([]operand.Operand, bool, bool) {
	if f.Only64() && in.ModeBits != 64 {
		return nil, false, false
	}
	if f.Not64() && in.ModeBits == 64 {
		return nil, false, false
	}
	if bypass < 8 && !in.CPUMask.HasAll(f.CPU) {
		return nil, false, false
	}
	if len(in.Operands) != len(f.Operands) {
		return nil, false, false
	}
	if in.AVXTagged && f.NotAVX() {
		return nil, false, false
	}
	if f.OnlyAVX() && !in.AVXTagged {
		return nil, false, false
	}
	if in.Dialect == insn.DialectGAS {
		if f.GasIllegal() {
			return nil, false, false
		}
	} else if f.GasOnly() {
		return nil, false, false
	}
	if in.Dialect == insn.DialectGAS && in.SuffixFlags != 0 && !f.GasNoRev() {
		if f.GasSuffixes != 0 && f.GasSuffixes&in.SuffixFlags == 0 {
			return nil, false, false
		}
	}

	reversed := in.Dialect == insn.DialectGAS && !f.GasNoRev()
	ops := in.Operands
	pats := f.Operands
	if reversed {
		ops = reverseOperands(ops)
		pats = reversePatterns(pats)
	}

	for i := range ops {
		if !operandMatches(ops[i], pats[i], bypass) {
			return nil, false, false
		}
	}
	return ops, reversed, true
}

func reverseOperands(in []operand.Operand) []operand.Operand {
	out := make([]operand.Operand, len(in))
	for i, o := range in {
		out[len(in)-1-i] = o
	}
	return out
}

func reversePatterns(in []table.OperandPattern) []table.OperandPattern {
	out := make([]table.OperandPattern, len(in))
	for i, p := range in {
		out[len(in)-1-i] = p
	}
	return out
}

// operandMatches applies spec.md §4.4's per-operand checks: type, size
// (relaxed by bypass level per the GAS/non-GAS rules), 64-bit EA-size gate,
// and target-modifier match.
func operandMatches(op operand.Operand, pat table.OperandPattern, bypass int) bool {
	if !typeMatches(op, pat.Type) {
		return false
	}
	if op.TargetMod != 0 && op.TargetMod != pat.TargetMod {
		// Only an operand that explicitly names a modifier (near/short/far/to)
		// can reject a form: a plain, unmodified jump target must still match
		// every SHORT/NEAR/FAR sibling form so the table-order preference
		// (SHORT tried first) and internal/encoder/jump's own span-driven
		// SHORT-to-NEAR growth get a chance to run at all.
		return false
	}
	if op.Kind == operand.KindImm && op.ExplicitSizeBits == 0 && op.Imm.Known {
		// An immediate the user wrote with no explicit size is free to
		// match the narrowest pattern its actual value fits, not just the
		// pattern whose declared width happens to equal the operand's —
		// this is what lets "mov rax, 1" prefer the shorter r/m64,imm32
		// form over r64,imm64 (spec.md §8 scenario 2), the same way real
		// assemblers pick the most compact available encoding.
		if !immFits(op.Imm.Integer, pat.Size, pat.Action) {
			return false
		}
	}
	if pat.EAS64 && op.Kind == operand.KindMem {
		// 64-bit EA-size gate: the memory operand's address size must be
		// able to resolve to 64 bits; the EA analyser itself enforces the
		// concrete legality, this is the matcher's coarse pre-filter.
		if op.ExplicitSizeBits != 0 && op.ExplicitSizeBits != 64 {
			return false
		}
	}
	return sizeMatches(op, pat, bypass)
}

func typeMatches(op operand.Operand, t table.OperandType) bool {
	switch t {
	case table.OpNone:
		return op.Kind == operand.KindNone
	case table.OpImm, table.OpImm1, table.OpImmNotSegOff:
		return op.Kind == operand.KindImm
	case table.OpReg, table.OpAreg, table.OpCreg, table.OpDreg, table.OpXMM0:
		return op.Kind == operand.KindReg
	case table.OpMemOffs:
		// The A1/A3 moffs short forms address a bare displacement only —
		// no base, index, or RIP term — so they must not steal a based or
		// indexed memory operand a ModR/M-carrying form should encode.
		return op.Kind == operand.KindMem && len(op.Mem.Terms) == 0
	case table.OpMem, table.OpMemrAX, table.OpMemEAX, table.OpMemDX,
		table.OpMemXMMIndex, table.OpMemYMMIndex:
		return op.Kind == operand.KindMem
	case table.OpRM:
		return op.Kind == operand.KindReg || op.Kind == operand.KindMem
	case table.OpSIMDReg:
		return op.Kind == operand.KindReg && isVectorClass(op.Reg)
	case table.OpSIMDRM:
		return (op.Kind == operand.KindReg && isVectorClass(op.Reg)) || op.Kind == operand.KindMem
	case table.OpSegReg, table.OpCS, table.OpDS, table.OpES, table.OpFS, table.OpGS, table.OpSS:
		return op.Kind == operand.KindSegReg
	case table.OpCR, table.OpCR4:
		return op.Kind == operand.KindReg
	case table.OpDR, table.OpTR, table.OpST0:
		return op.Kind == operand.KindReg
	default:
		return false
	}
}

// immFits reports whether v is representable in a pattern of the given
// bit width: the signed range for an ActionSImm pattern, or either the
// signed or unsigned range of that width for a plain ActionImm pattern
// (NASM-style permissiveness: "mov eax, -1" and "mov eax, 0xffffffff" are
// both legal spellings of the same bit pattern). bits==0 or bits>=64
// always fits.
func immFits(v int64, bits int, action table.Action) bool {
	if bits <= 0 || bits >= 64 {
		return true
	}
	lo := -(int64(1) << uint(bits-1))
	hi := int64(1)<<uint(bits-1) - 1
	if v >= lo && v <= hi {
		return true
	}
	if action == table.ActionSImm || v < 0 {
		return false
	}
	return v < int64(1)<<uint(bits)
}

func isVectorClass(r interface{ Size() int }) bool {
	// XMM/YMM/ZMM registers are the only classes at 128/256/512 bits;
	// GPRs top out at 64, so a size check alone discriminates them without
	// importing internal/encoder/reg's Class enum (kept package-private to
	// avoid match depending on reg's full Class set for one predicate).
	s := r.Size()
	return s == 128 || s == 256 || s == 512
}

// sizeMatches implements spec.md §4.4's size rule: a pattern or operand
// with no size matches, otherwise the sizes must be equal. A register
// operand with no explicit size is compared by its register's own width.
// Bypass levels 1-6 accept any size mismatch, on every operand alike (no
// per-operand or immediate-versus-register distinction is made); Match
// uses those levels for blame only.
func sizeMatches(op operand.Operand, pat table.OperandPattern, bypass int) bool {
	size := op.ExplicitSizeBits
	if size == 0 && op.Kind == operand.KindReg {
		size = op.Reg.Size()
	}
	if pat.Size == 0 || size == 0 {
		return true
	}
	if size == pat.Size {
		return true
	}
	if bypass >= 1 && bypass <= 6 {
		return true // diagnostic-discovery bypass: relax the size gate
	}
	return false
}
