package ea

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

// setRexFromReg implements spec.md §4.3 Phase D: `set_rex_from_reg`. It
// returns the REX extension bit (0 or 1) this register contributes at the
// given REX bit position, and false if the register cannot be combined
// with whatever REX state the caller already holds.
//
// rexState is the instruction's REX accumulator so far; poison is the
// sentinel value meaning "an AH/BH/CH/DH operand has already forbidden
// REX entirely".
func setRexFromReg(r reg.Register, modeBits int, rexState *byte, poison byte) (bit byte, ok bool) {
	if modeBits != 64 {
		return 0, true // low 3 bits already placed by the caller; no REX in non-64-bit mode
	}
	if r.PoisonsREX() {
		if *rexState != 0 && *rexState != poison {
			return 0, false
		}
		*rexState = poison
		return 0, true
	}
	if *rexState == poison {
		return 0, false
	}
	if r.NeedsREX() {
		return r.ExtBit(), true
	}
	return 0, true
}

func rexConflict(sink *diag.Sink, loc diag.Location) (Result, bool) {
	sink.Error(diag.CodeRexConflict, loc, "REX prefix conflicts with an AH/BH/CH/DH operand")
	return Result{}, false
}
