package table

// Arithmetic instruction forms. ADD is generalised directly from
// architecture/x86_64/instructions.go's populated table (the teacher
// leaves "Arithmetic Instructions" as an empty section comment — this is
// the section the design notes ask us to fill in, in the same per-form
// struct-literal style the teacher uses for MOV/XCHG above it). SUB/CMP
// follow ADD's opcode family exactly (Intel assigns them the same
// arithmetic-group layout, only the group's /digit and base opcode
// differ); INC/DEC/NEG/MUL/IMUL/DIV/IDIV are added fresh per SPEC_FULL's
// coverage list, grounded on the same /digit ModR/M.reg-extension scheme
// ADD/SUB/CMP already use.

// arithGroup builds the eleven-form family shared by ADD/OR/ADC/SBB/AND/
// SUB/XOR/CMP: r/m8,r8 / r/m32,r32 / r/m64,r64 / r8,r/m8 / r32,r/m32 /
// r64,r/m64 / AL,imm8 / eAX,imm32 / r/m8,imm8 / r/m32,imm32 and
// r/m64,imm32(sext) with the 0x83 imm8 alternate — every arithmetic
// instruction in this family differs only in its base opcode byte and its
// /digit in the 0x80/0x81/0x83 immediate-group encodings.
func arithGroup(mnemonic string, base byte, digit int) Group {
	return Group{Mnemonic: mnemonic, Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{base}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(8, ActionEA), regOp(8, ActionSpare)}},
		{CPU: noCPU, Opcode: []byte{base + 1}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(32, ActionEA), regOp(32, ActionSpare)}},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{base + 1}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(64, ActionEA), regOp(64, ActionSpare)}},
		{CPU: noCPU, Opcode: []byte{base + 2}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(8, ActionSpare), rmOp(8, ActionEA)}},
		{CPU: noCPU, Opcode: []byte{base + 3}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(32, ActionEA)}},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{base + 3}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionSpare), rmOp(64, ActionEA)}},
		// AL/eAX/rAX, imm short forms
		{CPU: noCPU, Opcode: []byte{base + 4}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{aregOp(8), immOp(8, PostNone)}},
		{CPU: noCPU, Opcode: []byte{base + 5}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{aregOp(32), immOp(32, PostNone)}},
		// r/m8, imm8
		{CPU: noCPU, Opcode: []byte{0x80}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(8, ActionEA), immOp(8, PostNone)}},
		// r/m32, imm32 with an imm8 alternate (0x83 group, SImm8 postop)
		{CPU: noCPU, Modifiers: mods(ModifierOp{Kind: ModImm8, Value: 0x83}), Opcode: []byte{0x81}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(32, ActionEA), simmOp(32, PostSImm8)}},
		{CPU: noCPU, Modifiers: mods(rexW64, ModifierOp{Kind: ModImm8, Value: 0x83}), Opcode: []byte{0x81}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(64, ActionEA), simmOp(32, PostSImm8)}},
	}}
}

var (
	ADD = arithGroup("ADD", 0x00, 0)
	OR  = arithGroup("OR", 0x08, 1)
	ADC = arithGroup("ADC", 0x10, 2)
	SBB = arithGroup("SBB", 0x18, 3)
	AND = arithGroup("AND", 0x20, 4)
	SUB = arithGroup("SUB", 0x28, 5)
	XOR = arithGroup("XOR", 0x30, 6)
	CMP = arithGroup("CMP", 0x38, 7)

	// unaryGroup covers INC/DEC/NOT/NEG: a single r/m operand, /digit in
	// the 0xFE/0xFF (8-bit/wide) ModR/M group.
	INC = unaryGroup("INC", 4)
	DEC = unaryGroup("DEC", 1)
	NOT = unaryGroup("NOT", 2)
	NEG = unaryGroup("NEG", 3)

	// mulDivGroup covers MUL/IMUL(1-operand)/DIV/IDIV: a single r/m
	// operand against the implied accumulator, /digit in the 0xF6/0xF7
	// group.
	MUL  = mulDivGroup("MUL", 4)
	DIV = mulDivGroup("DIV", 6)
	IDIV = mulDivGroup("IDIV", 7)

	// IMUL additionally has the two- and three-operand forms (r32,r/m32
	// and r32,r/m32,imm32) that MUL/DIV lack.
	IMUL = Group{Mnemonic: "IMUL", Forms: append(mulDivGroup("IMUL", 5).Forms,
		InsnForm{CPU: noCPU, Opcode: []byte{0x0F, 0xAF}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(32, ActionEA)}},
		InsnForm{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x0F, 0xAF}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionSpare), rmOp(64, ActionEA)}},
		InsnForm{CPU: noCPU, Opcode: []byte{0x69}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(32, ActionEA), immOp(32, PostNone)}},
		InsnForm{CPU: noCPU, Modifiers: mods(ModifierOp{Kind: ModImm8, Value: 0x6B}), Opcode: []byte{0x69}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(32, ActionEA), simmOp(32, PostSImm8)}},
	)}
)

func unaryGroup(mnemonic string, digit int) Group {
	return Group{Mnemonic: mnemonic, Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xFE}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(8, ActionEA)}},
		{CPU: noCPU, Opcode: []byte{0xFF}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(32, ActionEA)}},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xFF}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(64, ActionEA)}},
	}}
}

func mulDivGroup(mnemonic string, digit int) Group {
	return Group{Mnemonic: mnemonic, Forms: []InsnForm{
		{CPU: noCPU, Opcode: []byte{0xF6}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(8, ActionEA)}},
		{CPU: noCPU, Opcode: []byte{0xF7}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(32, ActionEA)}},
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xF7}, SpareDigit: digit,
			Operands: []OperandPattern{rmOp(64, ActionEA)}},
	}}
}
