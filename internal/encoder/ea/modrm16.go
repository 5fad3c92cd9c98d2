package ea

import "github.com/keurnel/x86enc/internal/encoder/reg"

// presence16 is a bitmask over the four legal 16-bit addressing registers,
// used to look up the fixed ModR/M map of spec.md §4.3 Phase B.
type presence16 byte

const (
	has16BX presence16 = 1 << iota
	has16BP
	has16SI
	has16DI
)

// modrm16Entry is one row of the fixed 16-bit ModR/M map: the rm field this
// register combination encodes, and whether BP participates (which forces
// at least an 8-bit displacement even when the value is zero).
type modrm16Entry struct {
	rm       byte
	basIsBP  bool
}

var modrm16Table = map[presence16]modrm16Entry{
	has16BX | has16SI: {rm: 0},
	has16BX | has16DI: {rm: 1},
	has16BP | has16SI: {rm: 2, basIsBP: true},
	has16BP | has16DI: {rm: 3, basIsBP: true},
	has16SI:           {rm: 4},
	has16DI:           {rm: 5},
	has16BP:           {rm: 6, basIsBP: true},
	has16BX:           {rm: 7},
	0:                 {rm: 6}, // pure displacement: mod=00 rm=6 is disp16-direct
}

// reg16Name classifies a register as one of the four legal 16-bit
// addressing registers, or reports it is not one of them.
func reg16Name(r reg.Register) (presence16, bool) {
	if r.Class != reg.Class16 {
		return 0, false
	}
	switch r.Number {
	case regnumBX:
		return has16BX, true
	case regnumBP:
		return has16BP, true
	case regnumSI:
		return has16SI, true
	case regnumDI:
		return has16DI, true
	default:
		return 0, false
	}
}

// Register encoding numbers for BX/BP/SI/DI, duplicated from internal/encoder/reg
// to avoid an import cycle risk from re-exporting unexported table internals;
// these four numbers are part of the stable x86 register encoding.
const (
	regnumBX = 3
	regnumBP = 5
	regnumSI = 6
	regnumDI = 7
)
