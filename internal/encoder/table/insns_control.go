package table

import (
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

// em64tCPU gates SYSCALL/SYSRET on long-mode support.
var em64tCPU = [3]cpu.Feature{cpu.FeatureEM64T, cpu.FeatureNone, cpu.FeatureNone}

// Control-flow instruction forms: JMP, the sixteen Jcc condition codes,
// CALL, RET, SYSCALL/SYSRET, INT/INT3/INTO, IRET. Added fresh per
// SPEC_FULL's coverage list — the teacher leaves "Control Flow
// Instructions" as an empty section comment. Grounded on spec.md §4.6's
// jump-encoder prose directly for the SHORT/NEAR sibling-form pairing
// internal/encoder/jump.RelJump expects to find within a mnemonic's Forms.

// jccGroup builds the short (0x70+cc) and near (0x0F 0x80+cc) sibling
// forms of a single condition code; internal/encoder/jump scans these by
// TargetMod to find the SHORT/NEAR opcode pair (spec.md §4.6).
func jccGroup(mnemonic string, cc byte) Group {
	return Group{Mnemonic: mnemonic, Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0x70 + cc}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{relOp(8, reg.TargetModShort)}},
		{CPU: noCPU, Opcode: []byte{0x0F, 0x80 + cc}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{relOp(32, reg.TargetModNear)}},
	}}
}

var (
	JMP = Group{Mnemonic: "JMP", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xEB}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{relOp(8, reg.TargetModShort)}},
		{CPU: noCPU, Opcode: []byte{0xE9}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{relOp(32, reg.TargetModNear)}},
		// JMP r/m64 (indirect near)
		{CPU: noCPU, Opcode: []byte{0xFF}, SpareDigit: 4,
			Operands: []OperandPattern{rmOp(64, ActionEA)}},
		// JMP FAR ptr16:32 / JMP FAR r/m (indirect far)
		{CPU: noCPU, Opcode: []byte{0xEA}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpImm, Size: 32, TargetMod: reg.TargetModFar, Action: ActionJmpFar}}},
		{CPU: noCPU, Opcode: []byte{0xFF}, SpareDigit: 5,
			Operands: []OperandPattern{{Type: OpMem, TargetMod: reg.TargetModFar, Action: ActionEA}}},
	}}

	// Jcc condition codes in Intel's canonical 0x0..0xF ordering.
	JO  = jccGroup("JO", 0x0)
	JNO = jccGroup("JNO", 0x1)
	JB  = jccGroup("JB", 0x2) // aka JC, JNAE
	JAE = jccGroup("JAE", 0x3) // aka JNB, JNC
	JE  = jccGroup("JE", 0x4)  // aka JZ
	JNE = jccGroup("JNE", 0x5) // aka JNZ
	JBE = jccGroup("JBE", 0x6) // aka JNA
	JA  = jccGroup("JA", 0x7)  // aka JNBE
	JS  = jccGroup("JS", 0x8)
	JNS = jccGroup("JNS", 0x9)
	JP  = jccGroup("JP", 0xA) // aka JPE
	JNP = jccGroup("JNP", 0xB) // aka JPO
	JL  = jccGroup("JL", 0xC)  // aka JNGE
	JGE = jccGroup("JGE", 0xD) // aka JNL
	JLE = jccGroup("JLE", 0xE) // aka JNG
	JG  = jccGroup("JG", 0xF)  // aka JNLE

	CALL = Group{Mnemonic: "CALL", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xE8}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{relOp(32, reg.TargetModNear)}},
		// CALL r/m64 (indirect near)
		{CPU: noCPU, Opcode: []byte{0xFF}, SpareDigit: 2,
			Operands: []OperandPattern{rmOp(64, ActionEA)}},
		// CALL FAR ptr16:32 / CALL FAR r/m (indirect far)
		{CPU: noCPU, Opcode: []byte{0x9A}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpImm, Size: 32, TargetMod: reg.TargetModFar, Action: ActionJmpFar}}},
		{CPU: noCPU, Opcode: []byte{0xFF}, SpareDigit: 3,
			Operands: []OperandPattern{{Type: OpMem, TargetMod: reg.TargetModFar, Action: ActionEA}}},
	}}

	RET = Group{Mnemonic: "RET", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xC3}, SpareDigit: NoSpareDigit},
		// RET imm16 (pop a further imm16 bytes off the stack)
		{CPU: noCPU, Opcode: []byte{0xC2}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{immOp(16, PostNone)}},
		// RETF / RETF imm16
		{CPU: noCPU, Opcode: []byte{0xCB}, SpareDigit: NoSpareDigit},
		{CPU: noCPU, Opcode: []byte{0xCA}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{immOp(16, PostNone)}},
	}}

	SYSCALL = Group{Mnemonic: "SYSCALL", Forms: []InsnForm{
		{CPU: em64tCPU, Misc: FlagOnly64, Opcode: []byte{0x0F, 0x05}, SpareDigit: NoSpareDigit},
	}}

	SYSRET = Group{Mnemonic: "SYSRET", Forms: []InsnForm{
		{CPU: em64tCPU, Misc: FlagOnly64, Opcode: []byte{0x0F, 0x07}, SpareDigit: NoSpareDigit},
	}}

	INT3 = Group{Mnemonic: "INT3", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xCC}, SpareDigit: NoSpareDigit},
	}}

	INT = Group{Mnemonic: "INT", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xCD}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{immOp(8, PostNone)}},
	}}

	INTO = Group{Mnemonic: "INTO", Forms: []InsnForm{
		{CPU: noCPU, Misc: FlagNot64, Opcode: []byte{0xCE}, SpareDigit: NoSpareDigit},
	}}

	IRET = Group{Mnemonic: "IRET", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xCF}, SpareDigit: NoSpareDigit},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xCF}, SpareDigit: NoSpareDigit},
	}}

	NOP = Group{Mnemonic: "NOP", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0x90}, SpareDigit: NoSpareDigit},
	}}

	HLT = Group{Mnemonic: "HLT", Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xF4}, SpareDigit: NoSpareDigit},
	}}

	CPUID = Group{Mnemonic: "CPUID", Forms: []InsnForm{
		{CPU: em64tCPU, Opcode: []byte{0x0F, 0xA2}, SpareDigit: NoSpareDigit},
	}}

	RDTSC = Group{Mnemonic: "RDTSC", Forms: []InsnForm{
		{CPU: em64tCPU, Opcode: []byte{0x0F, 0x31}, SpareDigit: NoSpareDigit},
	}}
)
