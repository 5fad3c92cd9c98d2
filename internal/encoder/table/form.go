package table

import (
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/vex"
)

// GasSuffix is the AT&T-dialect size-suffix bitmask a form accepts
// (spec.md §4.4 "suffix gate (GAS)").
type GasSuffix uint8

const (
	SuffixNone GasSuffix = 0
	SuffixB    GasSuffix = 1 << 0
	SuffixW    GasSuffix = 1 << 1
	SuffixL    GasSuffix = 1 << 2
	SuffixQ    GasSuffix = 1 << 3
)

// MiscFlags packs the bit-mode/AVX/dialect gates of spec.md §4.4.
type MiscFlags uint16

const (
	FlagOnly64 MiscFlags = 1 << iota
	FlagNot64
	FlagOnlyAVX
	FlagNotAVX
	FlagGasOnly
	FlagGasIllegal
	FlagGasNoRev // suppress GAS operand-reversal for this form
)

func (f MiscFlags) has(bit MiscFlags) bool { return f&bit != 0 }

// ModifierKind is the recipe a modifier byte applies (spec.md §4.5 step 1).
type ModifierKind int

const (
	ModNone ModifierKind = iota
	ModPreAdd
	ModOp0Add
	ModOp1Add
	ModOp2Add
	ModSpAdd
	ModOpSizeR
	ModImm8
	ModAdSizeR
	ModDOpS64R
	ModOp1AddSp
	ModSetVEX
	ModGap
)

// ModifierOp is one of a form's three modifier-byte slots.
type ModifierOp struct {
	Kind  ModifierKind
	Value byte
}

// SpecialPrefix ranges: 0 means no special prefix; 0xC0..0xCF selects VEX,
// 0x80..0x8F selects XOP (spec.md §4.7). The exact value feeds VEX.pp/L/W
// decoding in internal/encoder/vex.
const (
	SpecialPrefixVEXLo = 0xC0
	SpecialPrefixVEXHi = 0xCF
	SpecialPrefixXOPLo = 0x80
	SpecialPrefixXOPHi = 0x8F
)

// IsVEX reports whether p selects the VEX encoding.
func IsVEX(p byte) bool { return p >= SpecialPrefixVEXLo && p <= SpecialPrefixVEXHi }

// IsXOP reports whether p selects the XOP encoding.
func IsXOP(p byte) bool { return p >= SpecialPrefixXOPLo && p <= SpecialPrefixXOPHi }

// NoSpareDigit marks a form with no fixed ModR/M.reg digit.
const NoSpareDigit = -1

// VEXInfo is the static WLpp recipe a VEX/XOP form's SpecialPrefix byte
// decodes to (spec.md §4.7); the REX bits and Vvvv that round it out to a
// full vex.Fields are only known once the matched operands are seen, so
// those stay zero here and are filled in by the general encoder.
type VEXInfo struct {
	Kind  vex.Kind
	W     bool
	L256  bool
	PP    vex.PP
	MMMMM byte
}

// InsnForm is a single static encoding recipe for a mnemonic (spec.md §3).
// InsnForm values are process-wide immutable; the encoder only ever reads
// them.
type InsnForm struct {
	GasSuffixes       GasSuffix
	Misc              MiscFlags
	CPU               [3]cpu.Feature
	Modifiers         [3]ModifierOp
	DefaultOperSize   int // 0, 16, 32, or 64
	DefaultOperSize64 int // the form's opersize when OPER_SIZE=64 is requested
	SpecialPrefix     byte
	VEX               VEXInfo // meaningful only when SpecialPrefix selects VEX/XOP (IsVEX/IsXOP)
	Opcode            []byte
	SpareDigit        int // fixed ModR/M.reg value, or NoSpareDigit
	Operands          []OperandPattern
}

// Only64 reports whether this form requires 64-bit mode.
func (f InsnForm) Only64() bool { return f.Misc.has(FlagOnly64) }

// Not64 reports whether this form is forbidden in 64-bit mode.
func (f InsnForm) Not64() bool { return f.Misc.has(FlagNot64) }

// OnlyAVX reports whether this form requires an AVX-tagged instruction.
func (f InsnForm) OnlyAVX() bool { return f.Misc.has(FlagOnlyAVX) }

// NotAVX reports whether this form is forbidden for an AVX-tagged instruction.
func (f InsnForm) NotAVX() bool { return f.Misc.has(FlagNotAVX) }

// GasOnly reports whether this form is restricted to the GAS dialect.
func (f InsnForm) GasOnly() bool { return f.Misc.has(FlagGasOnly) }

// GasIllegal reports whether this form is forbidden under the GAS dialect.
func (f InsnForm) GasIllegal() bool { return f.Misc.has(FlagGasIllegal) }

// GasNoRev reports whether GAS operand-reversal is suppressed for this form.
func (f InsnForm) GasNoRev() bool { return f.Misc.has(FlagGasNoRev) }

// Group is a mnemonic's instruction-form table: spec.md §3's "form group
// pointer, form count" pair, held as a plain slice (Go's idiomatic
// equivalent of a pointer+count, and what the teacher's own
// `Instruction{Mnemonic, Forms []InstructionForm}` already does).
type Group struct {
	Mnemonic string
	Forms    []InsnForm
}
