package table

import (
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

// The functions below build one-off OperandPattern/InsnForm values tersely,
// the same role architecture/x86_64/operands.go's package-level
// OperandReg8/OperandImm32/... vars play for the teacher's simpler
// {type,size} pairs — except a pattern here also carries the action the
// general encoder dispatches on, which varies per form even for operands
// that share a type and size, so these are constructors rather than fixed
// vars.

func regOp(size int, action Action) OperandPattern {
	return OperandPattern{Type: OpReg, Size: size, Action: action}
}

func rmOp(size int, action Action) OperandPattern {
	return OperandPattern{Type: OpRM, Size: size, Action: action}
}

func immOp(size int, post PostAction) OperandPattern {
	return OperandPattern{Type: OpImm, Size: size, Action: ActionImm, Post: post}
}

func simmOp(size int, post PostAction) OperandPattern {
	return OperandPattern{Type: OpImm, Size: size, Action: ActionSImm, Post: post}
}

func aregOp(size int) OperandPattern {
	return OperandPattern{Type: OpAreg, Size: size, Action: ActionNone}
}

func cregOp() OperandPattern {
	return OperandPattern{Type: OpCreg, Size: 8, Action: ActionNone}
}

func imm1Op() OperandPattern {
	return OperandPattern{Type: OpImm1, Action: ActionNone}
}

func memOp(size int, action Action) OperandPattern {
	return OperandPattern{Type: OpMem, Size: size, Action: action}
}

func relOp(size int, tmod reg.TargetModifier) OperandPattern {
	return OperandPattern{Type: OpImm, Size: size, TargetMod: tmod, Action: ActionJmpRel}
}

func simdRMOp(size int, action Action) OperandPattern {
	return OperandPattern{Type: OpSIMDRM, Size: size, Action: action}
}

func simdRegOp(size int, action Action) OperandPattern {
	return OperandPattern{Type: OpSIMDReg, Size: size, Action: action}
}

// noCPU is the "no feature required beyond baseline" triple.
var noCPU = [3]cpu.Feature{cpu.Feature386, cpu.FeatureNone, cpu.FeatureNone}

// rexW64 is the single DOpS64R-style modifier recipe used by every 64-bit
// GPR form: force REX.W via the opcode-size-override-to-64 modifier slot.
var rexW64 = ModifierOp{Kind: ModDOpS64R, Value: 1}

func mods(ms ...ModifierOp) [3]ModifierOp {
	var out [3]ModifierOp
	copy(out[:], ms)
	return out
}
