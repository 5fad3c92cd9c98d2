package ea

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

// analyse16 implements spec.md §4.3 Phases A (legality), B, and C for
// 16-bit addressing: only {BX,BP,SI,DI} at multiplier 0 or 1, in the eight
// combinations of the fixed ModR/M map.
func analyse16(expr Expr, base *reg.Register, haveBase bool, index *reg.Register, haveIndex bool, sink *diag.Sink, loc diag.Location) (Result, bool) {
	var mask presence16
	for _, r := range []*reg.Register{base, index} {
		if r == nil {
			continue
		}
		p, ok := reg16Name(*r)
		if !ok {
			sink.Error(diag.CodeInvalidEA, loc, "only BX, BP, SI, and DI may appear in a 16-bit address")
			return Result{}, false
		}
		mask |= p
	}
	entry, ok := modrm16Table[mask]
	if !ok {
		sink.Error(diag.CodeInvalidEA, loc, "illegal 16-bit register combination")
		return Result{}, false
	}

	dispMod, disp, hasDisp, ok := selectDisp(expr, 16, entry.basIsBP, sink, loc)
	if !ok {
		return Result{}, false
	}

	return Result{
		ModRM:    (dispMod << 6) | entry.rm,
		HasDisp:  hasDisp,
		Disp:     disp,
		DispMod:  dispMod,
		AddrSize: 16,
	}, true
}
