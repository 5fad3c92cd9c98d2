// Package table implements the static instruction-form tables of spec.md
// §3/§4.4: `InsnForm` and `OperandPattern`, grouped by mnemonic.
//
// Grounded on architecture/x86_64/instructions.go and architecture/x86_64/
// operands.go, which hold the same `asm.Instruction{Mnemonic, Forms:
// []asm.InstructionForm{Operands, Opcode, ModRM, Imm, Encoding, REXPrefix}}`
// shape populated for MOV/MOVZX/MOVSX/LEA/PUSH/POP/ADD/XCHG; this package
// generalises that shape into spec.md's richer per-form record (CPU gates,
// modifier-byte recipes, per-operand action/post-action) and extends
// coverage to the rest of the committed mnemonic list. Tables stay
// process-wide immutable package vars, exactly as the teacher's were.
package table

import (
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

// OperandType enumerates the operand-matching categories of spec.md §4.4.
type OperandType int

const (
	OpNone OperandType = iota
	OpImm
	OpReg
	OpMem
	OpRM // register-or-memory
	OpSIMDReg
	OpSIMDRM
	OpSegReg
	OpCR
	OpDR
	OpTR
	OpST0
	OpAreg // AL/AX/EAX/RAX, implied accumulator
	OpCreg // CL, implied shift count
	OpDreg // DX, implied port
	OpCS
	OpDS
	OpES
	OpFS
	OpGS
	OpSS
	OpCR4
	OpMemOffs
	OpImm1 // literal constant 1 (shift/rotate by one)
	OpImmNotSegOff
	OpXMM0
	OpMemrAX  // [rAX]-only memory form (string ops, XLAT)
	OpMemEAX  // [EAX]-only memory form, forces 32-bit address size
	OpMemDX   // DX-addressed I/O port
	OpMemXMMIndex
	OpMemYMMIndex
)

// Action is how the general encoder (spec.md §4.5 step 3) consumes a
// matched operand.
type Action int

const (
	ActionNone Action = iota
	ActionEA
	ActionEAVEX
	ActionImm
	ActionSImm
	ActionSpare
	ActionSpareVEX
	ActionOp0Add
	ActionOp1Add
	ActionSpareEA
	ActionAdSizeEA
	ActionVEX
	ActionVEXImmSrc
	ActionVEXImm
	ActionJmpRel
	ActionJmpFar
	ActionAdSizeR
)

// PostAction is a post-operand action of spec.md §4.5 step 5.
type PostAction int

const (
	PostNone PostAction = iota
	PostSImm8
	PostShortMov
	PostA16
	PostSImm32Avail
)

// OperandPattern is `{type, size, relaxed, eas64, target-mod, action,
// post-action}` (spec.md §3).
type OperandPattern struct {
	Type      OperandType
	Size      int // bits; 0 = unspecified/any
	Relaxed   bool
	EAS64     bool
	TargetMod reg.TargetModifier
	Action    Action
	Post      PostAction
}
