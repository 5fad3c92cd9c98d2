package table

// TEST is the one logical-group instruction the arithGroup/unaryGroup
// families in insns_arith.go don't already cover (AND/OR/XOR ride
// arithGroup; NOT rides unaryGroup): it shares AND's ModR/M shape but has
// its own accumulator-immediate opcodes and no /digit-group immediate
// form, so it gets its own small table rather than another arithGroup
// parameter.
var TEST = Group{Mnemonic: "TEST", Forms: []InsnForm{
	{CPU: noCPU, Opcode: []byte{0x84}, SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{rmOp(8, ActionEA), regOp(8, ActionSpare)}},
	{CPU: noCPU, Opcode: []byte{0x85}, SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{rmOp(32, ActionEA), regOp(32, ActionSpare)}},
	{CPU: noCPU, Modifiers: mods(rexW64), Opcode: []byte{0x85}, SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{rmOp(64, ActionEA), regOp(64, ActionSpare)}},
	{CPU: noCPU, Opcode: []byte{0xA8}, SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{aregOp(8), immOp(8, PostNone)}},
	{CPU: noCPU, Opcode: []byte{0xA9}, SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{aregOp(32), immOp(32, PostNone)}},
	{CPU: noCPU, Opcode: []byte{0xF6}, SpareDigit: 0,
		Operands: []OperandPattern{rmOp(8, ActionEA), immOp(8, PostNone)}},
	{CPU: noCPU, Opcode: []byte{0xF7}, SpareDigit: 0,
		Operands: []OperandPattern{rmOp(32, ActionEA), immOp(32, PostNone)}},
}}

// Lockable reports whether mnemonic's LOCK-eligible forms (spec.md §4.2
// KindLockRep) make it valid to prefix with LOCK: a read-modify-write
// instruction whose destination is memory. Grounded on spec.md's
// "LOCK-eligible forms" coverage commitment rather than a per-form flag,
// since eligibility here depends only on the mnemonic identity, not on
// any one form's fields. Limited to mnemonics this table actually defines
// a Group for — BTC/BTR/BTS are real LOCK-eligible instructions but have
// no Group here, so they're left out rather than named speculatively.
func Lockable(mnemonic string) bool {
	switch mnemonic {
	case "ADD", "OR", "ADC", "SBB", "AND", "SUB", "XOR",
		"INC", "DEC", "NOT", "NEG",
		"XCHG",
		"ROL", "ROR", "RCL", "RCR", "SHL", "SHR", "SAR":
		return true
	default:
		return false
	}
}
