package reg

// General-purpose registers, 64-bit.
var (
	RAX = Register{Class: Class64, Number: 0}
	RCX = Register{Class: Class64, Number: 1}
	RDX = Register{Class: Class64, Number: 2}
	RBX = Register{Class: Class64, Number: 3}
	RSP = Register{Class: Class64, Number: 4}
	RBP = Register{Class: Class64, Number: 5}
	RSI = Register{Class: Class64, Number: 6}
	RDI = Register{Class: Class64, Number: 7}
	R8  = Register{Class: Class64, Number: 8}
	R9  = Register{Class: Class64, Number: 9}
	R10 = Register{Class: Class64, Number: 10}
	R11 = Register{Class: Class64, Number: 11}
	R12 = Register{Class: Class64, Number: 12}
	R13 = Register{Class: Class64, Number: 13}
	R14 = Register{Class: Class64, Number: 14}
	R15 = Register{Class: Class64, Number: 15}
)

// General-purpose registers, 32-bit.
var (
	EAX  = Register{Class: Class32, Number: 0}
	ECX  = Register{Class: Class32, Number: 1}
	EDX  = Register{Class: Class32, Number: 2}
	EBX  = Register{Class: Class32, Number: 3}
	ESP  = Register{Class: Class32, Number: 4}
	EBP  = Register{Class: Class32, Number: 5}
	ESI  = Register{Class: Class32, Number: 6}
	EDI  = Register{Class: Class32, Number: 7}
	R8D  = Register{Class: Class32, Number: 8}
	R9D  = Register{Class: Class32, Number: 9}
	R10D = Register{Class: Class32, Number: 10}
	R11D = Register{Class: Class32, Number: 11}
	R12D = Register{Class: Class32, Number: 12}
	R13D = Register{Class: Class32, Number: 13}
	R14D = Register{Class: Class32, Number: 14}
	R15D = Register{Class: Class32, Number: 15}
)

// General-purpose registers, 16-bit.
var (
	AX   = Register{Class: Class16, Number: 0}
	CX   = Register{Class: Class16, Number: 1}
	DX   = Register{Class: Class16, Number: 2}
	BX   = Register{Class: Class16, Number: 3}
	SP   = Register{Class: Class16, Number: 4}
	BP   = Register{Class: Class16, Number: 5}
	SI   = Register{Class: Class16, Number: 6}
	DI   = Register{Class: Class16, Number: 7}
	R8W  = Register{Class: Class16, Number: 8}
	R9W  = Register{Class: Class16, Number: 9}
	R10W = Register{Class: Class16, Number: 10}
	R11W = Register{Class: Class16, Number: 11}
	R12W = Register{Class: Class16, Number: 12}
	R13W = Register{Class: Class16, Number: 13}
	R14W = Register{Class: Class16, Number: 14}
	R15W = Register{Class: Class16, Number: 15}
)

// General-purpose registers, 8-bit low byte (REX-free).
var (
	AL = Register{Class: Class8Low, Number: 0}
	CL = Register{Class: Class8Low, Number: 1}
	DL = Register{Class: Class8Low, Number: 2}
	BL = Register{Class: Class8Low, Number: 3}
)

// General-purpose registers, 8-bit, REX-addressable.
var (
	SPL  = Register{Class: Class8REX, Number: 4}
	BPL  = Register{Class: Class8REX, Number: 5}
	SIL  = Register{Class: Class8REX, Number: 6}
	DIL  = Register{Class: Class8REX, Number: 7}
	R8B  = Register{Class: Class8REX, Number: 8}
	R9B  = Register{Class: Class8REX, Number: 9}
	R10B = Register{Class: Class8REX, Number: 10}
	R11B = Register{Class: Class8REX, Number: 11}
	R12B = Register{Class: Class8REX, Number: 12}
	R13B = Register{Class: Class8REX, Number: 13}
	R14B = Register{Class: Class8REX, Number: 14}
	R15B = Register{Class: Class8REX, Number: 15}
)

// General-purpose registers, 8-bit high byte, legacy — mutually exclusive
// with any REX prefix (spec.md §4.3 Phase D, §7 CodeRexConflict /
// CodeHigh8RexConflict).
var (
	AH = Register{Class: Class8High, Number: 4}
	CH = Register{Class: Class8High, Number: 5}
	DH = Register{Class: Class8High, Number: 6}
	BH = Register{Class: Class8High, Number: 7}
)
