package ea

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// selectDisp applies spec.md §4.3 Phase C: given the already-known
// displacement expression and the disp word size for this address size
// (16 for 16-bit addressing, 32 otherwise — displacement is never
// 64-bit), choose mod (00/01/10) and the serialised size in bits.
//
// forceNonzero mirrors "BP/EBP/R13 base with mod=00 is encoded by the map
// as mod=01 with an 8-bit zero displacement" — the caller passes true when
// the chosen base register demands a displacement even when its value
// would otherwise be elided.
func selectDisp(expr Expr, wordSizeBits int, forceNonzero bool, sink *diag.Sink, loc diag.Location) (mod byte, disp value.Value, hasDisp bool, ok bool) {
	hasRegs := len(expr.Terms) > 0

	if expr.DispSizeBits != 0 {
		switch expr.DispSizeBits {
		case 8:
			if !hasRegs {
				sink.Error(diag.CodeInvalidDispSize, loc, "an 8-bit displacement requires at least one register")
				return 0, value.Value{}, false, false
			}
			return 1, mkDisp(expr, 8, loc), true, true
		case 16, 32:
			if expr.DispSizeBits != wordSizeBits {
				sink.Error(diag.CodeInvalidDispSize, loc, "displacement size must match the address word size")
				return 0, value.Value{}, false, false
			}
			if !hasRegs {
				return 0, mkDisp(expr, expr.DispSizeBits, loc), true, true
			}
			return 2, mkDisp(expr, expr.DispSizeBits, loc), true, true
		default:
			sink.Error(diag.CodeInvalidDispSize, loc, "unsupported explicit displacement size")
			return 0, value.Value{}, false, false
		}
	}

	if !hasRegs {
		// Base-less direct address: mod=00 with the no-base rm value
		// (16-bit rm=6, 32-bit rm=5) carries a full word-size displacement.
		return 0, mkDisp(expr, wordSizeBits, loc), true, true
	}

	if !expr.HasDisp {
		if forceNonzero {
			v := mkDisp(Expr{Disp: value.KnownInt(0), HasDisp: true}, 8, loc)
			return 1, v, true, true
		}
		return 0, value.Value{}, false, true
	}

	if expr.DispRelative {
		return 2, mkDisp(expr, wordSizeBits, loc), true, true
	}

	if !expr.Disp.Known {
		// Unknown-valued integer (forward reference): default to 8-bit and
		// let the span resolver grow it once the real value is known.
		return 1, mkDisp(expr, 8, loc), true, true
	}

	v := expr.Disp.Integer
	switch {
	case v == 0 && !forceNonzero:
		return 0, value.Value{}, false, true
	case v >= -128 && v <= 127:
		return 1, mkDisp(expr, 8, loc), true, true
	default:
		return 2, mkDisp(expr, wordSizeBits, loc), true, true
	}
}

func mkDisp(expr Expr, sizeBits int, loc diag.Location) value.Value {
	return value.Value{
		Expr:           expr.Disp,
		SizeBits:       sizeBits,
		Signed:         true,
		Relative:       expr.DispRelative,
		SourceLocation: loc.String(),
	}
}
