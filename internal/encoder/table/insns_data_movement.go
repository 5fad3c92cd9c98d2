package table

// Data-movement instruction forms. MOV/MOVZX/MOVSX/LEA/PUSH/POP/XCHG are
// generalised directly from architecture/x86_64/instructions.go's
// populated tables; ShortMov, INC/DEC-style single-operand opcode-add
// encodings are absent from the teacher's table and added fresh per
// SPEC_FULL's committed coverage list.
var (
	MOV = Group{Mnemonic: "MOV", Forms: []InsnForm{
		// MOV r8, r8
		{CPU: noCPU, Opcode: []byte{0x88}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(8, ActionEA), regOp(8, ActionSpare)}},
		// MOV r16, r16
		{CPU: noCPU, Opcode: []byte{0x89}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(16, ActionEA), regOp(16, ActionSpare)}},
		// MOV r32, r32
		{CPU: noCPU, Opcode: []byte{0x89}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(32, ActionEA), regOp(32, ActionSpare)}},
		// MOV r64, r64
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x89}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{rmOp(64, ActionEA), regOp(64, ActionSpare)}},
		// MOV eAX, moffs / MOV moffs, eAX — the short accumulator-only disp
		// form the teacher's table never models; ShortMov is the candidate
		// flag the general encoder checks before falling back to the ModR/M
		// form above (spec.md §4.5 step 5 `ShortMov`).
		{CPU: noCPU, Opcode: []byte{0xA1}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{aregOp(32), {Type: OpMemOffs, Size: 32, Action: ActionEA, Post: PostShortMov}}},
		{CPU: noCPU, Opcode: []byte{0xA3}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpMemOffs, Size: 32, Action: ActionEA, Post: PostShortMov}, aregOp(32)}},
		// MOV r8, imm8
		{CPU: noCPU, Opcode: []byte{0xB0}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(8, ActionOp0Add), immOp(8, PostNone)}},
		// MOV r32, imm32 — tried before the wider r/m32 ModR/M form below
		// since the opcode-add encoding is one byte shorter for a register
		// destination.
		{CPU: noCPU, Opcode: []byte{0xB8}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionOp0Add), immOp(32, PostNone)}},
		// MOV r/m32, imm32 (covers memory destinations, and register
		// destinations the B8 form above didn't already claim)
		{CPU: noCPU, Opcode: []byte{0xC7}, SpareDigit: 0,
			Operands: []OperandPattern{rmOp(32, ActionEA), immOp(32, PostNone)}},
		// MOV r/m64, imm32 (sign-extended) — tried before the full r64,imm64
		// form below: it is three bytes shorter and covers every value the
		// matcher would otherwise need the full 64-bit immediate for.
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xC7}, SpareDigit: 0,
			Operands: []OperandPattern{rmOp(64, ActionEA), simmOp(32, PostNone)}},
		// MOV r64, imm64 — only reached when the immediate's actual value
		// does not fit in a sign-extended 32 bits.
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0xB8}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionOp0Add), immOp(64, PostSImm32Avail)}},
	}}

	MOVZX = Group{Mnemonic: "MOVZX", Forms: []InsnForm{
		// MOVZX r32, r/m8
		{CPU: noCPU, Opcode: []byte{0x0F, 0xB6}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(8, ActionEA)}},
		// MOVZX r32, r/m16
		{CPU: noCPU, Opcode: []byte{0x0F, 0xB7}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(16, ActionEA)}},
		// MOVZX r64, r/m8
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x0F, 0xB6}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionSpare), rmOp(8, ActionEA)}},
	}}

	MOVSX = Group{Mnemonic: "MOVSX", Forms: []InsnForm{
		// MOVSX r32, r/m8
		{CPU: noCPU, Opcode: []byte{0x0F, 0xBE}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(8, ActionEA)}},
		// MOVSX r32, r/m16
		{CPU: noCPU, Opcode: []byte{0x0F, 0xBF}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(16, ActionEA)}},
		// MOVSXD r64, r/m32
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x63}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionSpare), rmOp(32, ActionEA)}},
	}}

	LEA = Group{Mnemonic: "LEA", Forms: []InsnForm{
		// LEA r32, m
		{CPU: noCPU, Opcode: []byte{0x8D}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), memOp(0, ActionEA)}},
		// LEA r64, m
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x8D}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionSpare), memOp(0, ActionEA)}},
	}}

	PUSH = Group{Mnemonic: "PUSH", Forms: []InsnForm{
		// PUSH r64 (opcode-add; no REX.W needed, 64-bit is the only width in long mode)
		{CPU: noCPU, Opcode: []byte{0x50}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionOp0Add)}},
		// PUSH imm8 / imm32 — imm8 is the Imm8 modifier's alt-opcode pair
		// (spec.md §4.1 make_alt1, §4.5 postop SImm8).
		{CPU: noCPU, Modifiers: mods(ModifierOp{Kind: ModImm8, Value: 0x6A}), Opcode: []byte{0x68}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{simmOp(32, PostSImm8)}},
		// PUSH r/m64
		{CPU: noCPU, Opcode: []byte{0xFF}, SpareDigit: 6,
			Operands: []OperandPattern{rmOp(64, ActionEA)}},
		// PUSH CS/DS/ES/SS/FS/GS — segment-register forms, NOT_64 for the
		// legacy four (CS/DS/ES/SS pushes are invalid in 64-bit mode).
		{CPU: noCPU, Misc: FlagNot64, Opcode: []byte{0x0E}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpCS, Action: ActionNone}}},
		{CPU: noCPU, Opcode: []byte{0x0F, 0xA0}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpFS, Action: ActionNone}}},
		{CPU: noCPU, Opcode: []byte{0x0F, 0xA8}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpGS, Action: ActionNone}}},
	}}

	POP = Group{Mnemonic: "POP", Forms: []InsnForm{
		// POP r64
		{CPU: noCPU, Opcode: []byte{0x58}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionOp0Add)}},
		// POP r/m64
		{CPU: noCPU, Opcode: []byte{0x8F}, SpareDigit: 0,
			Operands: []OperandPattern{rmOp(64, ActionEA)}},
		{CPU: noCPU, Opcode: []byte{0x0F, 0xA1}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpFS, Action: ActionNone}}},
		{CPU: noCPU, Opcode: []byte{0x0F, 0xA9}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{{Type: OpGS, Action: ActionNone}}},
	}}

	XCHG = Group{Mnemonic: "XCHG", Forms: []InsnForm{
		// XCHG r8, r/m8
		{CPU: noCPU, Opcode: []byte{0x86}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(8, ActionSpare), rmOp(8, ActionEA)}},
		// XCHG r32, r/m32
		{CPU: noCPU, Opcode: []byte{0x87}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(32, ActionSpare), rmOp(32, ActionEA)}},
		// XCHG r64, r/m64
		{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x87}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{regOp(64, ActionSpare), rmOp(64, ActionEA)}},
		// XCHG eAX, r32 (opcode-add short form)
		{CPU: noCPU, Opcode: []byte{0x90}, SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{aregOp(32), regOp(32, ActionOp0Add)}},
	}}
)
