package ea

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// VSIBKind selects whether a form demands vector-SIB indexing, and if so
// with which vector register width (spec.md §4.3 Phase A step 6).
type VSIBKind int

const (
	VSIBNone VSIBKind = iota
	VSIBXMM
	VSIBYMM
)

// Options carries the per-instruction context the analyser needs beyond
// the expression itself: operand/address sizes, mode, and the dialect and
// segment-override flags spec.md §4.3 Phase B's "Default-REL" rule and
// §4.3 Phase A step 6's VSIB rule depend on.
type Options struct {
	ModeBits       int
	AddrSizeBits   int // 0 lets the analyser pick from the expression's registers
	VSIB           VSIBKind
	DefaultRel     bool
	HasSegOverride bool
}

// Result is EffAddr after a successful Analyse: the ModR/M byte, optional
// SIB byte, optional displacement Value, and the REX.X/REX.B extension
// bits the encoder must fold into the instruction's REX byte.
type Result struct {
	ModRM      byte
	HasSIB     bool
	SIB        byte
	HasDisp    bool
	Disp       value.Value
	DispMod    byte // the mod bits actually chosen (00/01/10), informational
	IPRelative bool
	RexX       byte
	RexB       byte
	AddrSize   int
}

// Analyse runs phases A-D of spec.md §4.3 against a flattened address
// expression, returning false (with a diagnostic recorded on sink) when the
// expression is not a legal effective address.
func Analyse(expr Expr, opts Options, sink *diag.Sink, loc diag.Location) (Result, bool) {
	addrSize := opts.AddrSizeBits
	if addrSize == 0 {
		if opts.ModeBits == 64 {
			addrSize = 64
		} else {
			addrSize = opts.ModeBits
		}
	}

	// Phase A: register extraction and legality.
	terms := accumulate(expr.Terms)

	if expr.WRT != "" && expr.WRT != "rip" {
		sink.Error(diag.CodeInvalidEA, loc, "WRT of a register other than rip is not supported")
		return Result{}, false
	}

	// 16-bit addressing has its own, much narrower legality rule (spec.md
	// §4.3 Phase A step 5: only {BX,BP,SI,DI} at multiplier 0 or 1 in eight
	// fixed combinations) — it does not go through base/index/scale
	// decomposition at all, so it is handled entirely separately.
	if addrSize == 16 {
		var base, index *reg.Register
		for i := range terms {
			r := terms[i].reg
			if terms[i].mult != 1 {
				sink.Error(diag.CodeInvalidEA, loc, "16-bit addressing allows only multiplier 0 or 1")
				return Result{}, false
			}
			if base == nil {
				base = &r
			} else if index == nil {
				index = &r
			} else {
				sink.Error(diag.CodeInvalidEA, loc, "too many registers in a 16-bit address")
				return Result{}, false
			}
		}
		return analyse16(expr, base, base != nil, index, index != nil, sink, loc)
	}

	var base, index *reg.Register
	var scale int
	haveBase, haveIndex := false, false

	ripRelative := expr.WRT == "rip" || (expr.XformRipPlus && hasRIPTerm(terms))
	if ripRelative && opts.ModeBits != 64 {
		sink.Error(diag.CodeRipRelNot64Mode, loc, "RIP-relative addressing is only legal in 64-bit mode")
		return Result{}, false
	}

	if opts.VSIB != VSIBNone {
		r, b, ok := extractVSIB(terms, opts.VSIB)
		if !ok {
			sink.Error(diag.CodeInvalidEA, loc, "vector-SIB index must be an XMM/YMM register distinct from the base")
			return Result{}, false
		}
		index = &r
		scale = 1
		haveIndex = true
		if b != nil {
			base = b
			haveBase = true
		}
	} else if !ripRelative {
		for _, t := range terms {
			asBase, sc, ok := decomposeMultiplier(t.mult)
			if !ok {
				sink.Error(diag.CodeInvalidEA, loc, "illegal address multiplier")
				return Result{}, false
			}
			if asBase {
				if haveBase {
					sink.Error(diag.CodeEATooComplex, loc, "effective address has more than one base register")
					return Result{}, false
				}
				r := t.reg
				base = &r
				haveBase = true
			}
			if sc != 0 {
				if haveIndex {
					sink.Error(diag.CodeEATooComplex, loc, "effective address has more than one index register")
					return Result{}, false
				}
				r := t.reg
				index = &r
				scale = sc
				haveIndex = true
			}
		}

		// ESP/R12 may not be an index; the documented fix is to swap roles
		// when the user wrote e.g. `esp*1+other` (spec.md §4.3 Phase B).
		if haveIndex && isSPorR12(*index) && scale == 1 && haveBase {
			base, index = index, base
		} else if haveIndex && isSPorR12(*index) {
			sink.Error(diag.CodeInvalidEA, loc, "ESP/R12 cannot be used as an index register")
			return Result{}, false
		}
	}

	return analyse3264(expr, base, haveBase, index, haveIndex, scale, ripRelative, addrSize, opts, sink, loc)
}

func hasRIPTerm(terms []accumulated) bool {
	for _, t := range terms {
		if t.reg.IsRIP() {
			return true
		}
	}
	return false
}

func isSPorR12(r reg.Register) bool {
	return (r.Class == reg.Class64 || r.Class == reg.Class32) && r.Number&0x7 == 4 && r.Number >= 4
}

// extractVSIB picks the vector register (the index) and, if present, a
// distinct GP base out of the accumulated terms.
func extractVSIB(terms []accumulated, kind VSIBKind) (index reg.Register, base *reg.Register, ok bool) {
	wantClass := reg.ClassXMM
	if kind == VSIBYMM {
		wantClass = reg.ClassYMM
	}
	var vec *reg.Register
	var gp *reg.Register
	for _, t := range terms {
		r := t.reg
		if r.Class == wantClass {
			if vec != nil {
				return reg.Register{}, nil, false
			}
			v := r
			vec = &v
		} else if r.Class == reg.Class64 || r.Class == reg.Class32 {
			if gp != nil {
				return reg.Register{}, nil, false
			}
			g := r
			gp = &g
		}
	}
	if vec == nil {
		return reg.Register{}, nil, false
	}
	if gp != nil && gp.Number == vec.Number {
		return reg.Register{}, nil, false
	}
	return *vec, gp, true
}
