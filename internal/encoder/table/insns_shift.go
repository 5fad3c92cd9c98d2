package table

// Shift/rotate instruction forms (ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR), added
// fresh per SPEC_FULL's coverage list — the teacher leaves "Shift and
// Rotate Instructions" as an empty section comment. Grounded on the same
// /digit ModR/M-group scheme as internal/encoder/table/insns_arith.go's
// arithGroup, since Intel assigns the shift group (0xC0/0xC1/0xD0-0xD3)
// the identical shape: one /digit per mnemonic, three count sources (1,
// CL, imm8).
func shiftGroup(mnemonic string, digit int) Group {
	return Group{Mnemonic: mnemonic, Forms: []InsnForm{
		// r/m8, 1 (shift-by-one short form)
		{CPU: noCPU, Opcode: []byte{0xD0}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(8, ActionEA), imm1Op()}},
		{CPU: noCPU, Opcode: []byte{0xD1}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(32, ActionEA), imm1Op()}},
		// r/m8/32, CL
		{CPU: noCPU, Opcode: []byte{0xD2}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(8, ActionEA), cregOp()}},
		{CPU: noCPU, Opcode: []byte{0xD3}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(32, ActionEA), cregOp()}},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xD3}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(64, ActionEA), cregOp()}},
		// r/m8/32, imm8
		{CPU: noCPU, Opcode: []byte{0xC0}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(8, ActionEA), immOp(8, PostNone)}},
		{CPU: noCPU, Opcode: []byte{0xC1}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(32, ActionEA), immOp(8, PostNone)}},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xC1}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(64, ActionEA), immOp(8, PostNone)}},
	}}
}

var (
	ROL = shiftGroup("ROL", 0)
	ROR = shiftGroup("ROR", 1)
	RCL = shiftGroup("RCL", 2)
	RCR = shiftGroup("RCR", 3)
	SHL = shiftGroup("SHL", 4)
	SHR = shiftGroup("SHR", 5)
	SAL = shiftGroup("SAL", 6) // alias of SHL (digit 6 traps to SHL on real silicon)
	SAR = shiftGroup("SAR", 7)
)
