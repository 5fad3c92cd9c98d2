package ea

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
)

// analyse3264 implements spec.md §4.3 Phases B, C, and D for 32-bit and
// 64-bit addressing.
func analyse3264(expr Expr, base *reg.Register, haveBase bool, index *reg.Register, haveIndex bool, scale int, ripRelative bool, addrSize int, opts Options, sink *diag.Sink, loc diag.Location) (Result, bool) {
	if ripRelative {
		if haveBase || haveIndex {
			sink.Error(diag.CodeInvalidEA, loc, "RIP-relative addressing cannot combine with a base or index register")
			return Result{}, false
		}
		disp := mkDisp(expr, 32, loc)
		disp.Relative = true
		return Result{
			ModRM:      0x00<<6 | 5,
			HasDisp:    true,
			Disp:       disp,
			DispMod:    0,
			IPRelative: true,
			AddrSize:   addrSize,
		}, true
	}

	if !haveBase && !haveIndex && opts.DefaultRel && !opts.HasSegOverride {
		// Promote a pure displacement to RIP-relative addressing
		// (spec.md §4.3 Phase B, "Default-REL mode").
		if opts.ModeBits != 64 {
			sink.Error(diag.CodeRipRelNot64Mode, loc, "default-rel addressing is only legal in 64-bit mode")
			return Result{}, false
		}
		disp := mkDisp(expr, 32, loc)
		disp.Relative = true
		return Result{
			ModRM:      0x00<<6 | 5,
			HasDisp:    true,
			Disp:       disp,
			IPRelative: true,
			AddrSize:   addrSize,
		}, true
	}

	forceBaselessSIB := !haveBase && addrSize != 16 && (opts.ModeBits == 64 || haveIndex)
	needSIB := haveIndex || (haveBase && isSPorR12(*base)) || (!haveBase && opts.ModeBits == 64)

	var rexX, rexB byte
	var rexState byte // local; the caller folds these bits into the real instruction REX byte

	var sib byte
	rm := byte(5) // base-absent disp32 default
	if haveBase {
		rm = base.LowBits()
	}

	if needSIB {
		rm = 4
		var sb, ib byte = 5, 4 // default SIB.base=101 (none, disp32 follows), SIB.index=100 (none)
		if haveBase {
			sb = base.LowBits()
			bit, ok := setRexFromReg(*base, opts.ModeBits, &rexState, prefix.RexPoison)
			if !ok {
				return rexConflict(sink, loc)
			}
			rexB = bit
		}
		if haveIndex {
			if isSPorR12(*index) {
				sink.Error(diag.CodeInvalidEA, loc, "ESP/R12 cannot be used as an index register")
				return Result{}, false
			}
			ib = index.LowBits()
			bit, ok := setRexFromReg(*index, opts.ModeBits, &rexState, prefix.RexPoison)
			if !ok {
				return rexConflict(sink, loc)
			}
			rexX = bit
		}
		sib = (scaleField(scale) << 6) | (ib << 3) | sb
	} else if haveBase {
		bit, ok := setRexFromReg(*base, opts.ModeBits, &rexState, prefix.RexPoison)
		if !ok {
			return rexConflict(sink, loc)
		}
		rexB = bit
	}

	forceNonzero := haveBase && !needSIB && isEBPorR13(*base)
	wordSize := 32

	dispMod, dispValue, hasDisp, ok := selectDisp(expr, wordSize, forceNonzero, sink, loc)
	if !ok {
		return Result{}, false
	}

	// A base-absent SIB-required address (pure disp32 in 64-bit mode, or
	// an index-only address) always carries a full disp32 with mod=00.
	if forceBaselessSIB && !haveBase {
		dispMod = 0
		hasDisp = true
		dispValue = mkDisp(expr, 32, loc)
	}

	return Result{
		ModRM:    (dispMod << 6) | rm,
		HasSIB:   needSIB,
		SIB:      sib,
		HasDisp:  hasDisp,
		Disp:     dispValue,
		DispMod:  dispMod,
		RexX:     rexX,
		RexB:     rexB,
		AddrSize: addrSize,
	}, true
}

func scaleField(scale int) byte {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}

func isEBPorR13(r reg.Register) bool {
	return r.Number&0x7 == 5 && (r.Class == reg.Class32 || r.Class == reg.Class64)
}
