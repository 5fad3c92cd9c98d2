package encoder

import (
	"github.com/keurnel/x86enc/internal/bytecode"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// GeneralItem is the deferred bytecode for one general-encoded instruction
// (spec.md §4.5 step 8): legacy prefixes, optional REX, optional VEX/XOP,
// opcode, optional ModR/M+SIB+displacement or moffs, and trailing
// immediates. It implements bytecode.Spannable so the EA displacement can
// grow from an 8-bit guess to the full address word size exactly like
// internal/encoder/jump.RelJump grows SHORT to NEAR.
type GeneralItem struct {
	Prefixes []byte
	VEX      []byte
	Opcode   []byte

	HasModRM bool
	ModRM    byte
	HasSIB   bool
	SIB      byte

	HasDisp      bool
	Disp         value.Value
	DispMod      byte // 0, 1, or 2 (register-direct, mod=3, never carries a disp)
	AddrWordBits int  // 16 or 32: the disp size a mod=2 growth target uses

	IsMoffs  bool
	MoffsVal value.Value

	Imms []immField

	dispSpan    bytecode.SpanID
	hasDispSpan bool

	finalOff int
	finalLen int
}

// dispBytes is the displacement's serialised width. This follows the
// Value's own SizeBits rather than DispMod: DispMod is the ModR/M mod bits
// actually written (00/01/10), and a mod=00 encoding can still carry a
// full-width displacement (RIP-relative, or a base-less absolute address),
// so the two are independent.
func (g *GeneralItem) dispBytes() int {
	if !g.HasDisp {
		return 0
	}
	return g.Disp.SizeBits / 8
}

func (g *GeneralItem) length() int {
	n := len(g.Prefixes) + len(g.VEX) + len(g.Opcode)
	if g.HasModRM {
		n++
	}
	if g.HasSIB {
		n++
	}
	if g.HasDisp {
		n += g.dispBytes()
	}
	if g.IsMoffs {
		n += g.MoffsVal.SizeBits / 8
	}
	for _, im := range g.Imms {
		n += im.sizeBits / 8
	}
	return n
}

// CalcLen implements bytecode.Spannable. A span is registered only when the
// displacement was chosen at the narrowest (8-bit) size from a value whose
// integer is not yet known — the only case where the actual width might
// turn out wider once the symbol resolves (spec.md §4.5 step 8, §9).
func (g *GeneralItem) CalcLen(r bytecode.Registrar) int {
	g.hasDispSpan = false
	if g.HasDisp && g.DispMod == 1 && !g.Disp.Expr.Known {
		g.dispSpan = r.AddSpan(bytecode.SpanThreshold{Neg: -128, Pos: 127})
		g.hasDispSpan = true
	}
	return g.length()
}

// SpanValue implements bytecode.Spannable: the tracked value is the
// displacement's own integer, once known; still-unresolved symbolic
// displacements report 0, which never crosses the threshold on its own —
// this encoder has no internal symbol table to resolve a forward local
// reference against, so such a value can only grow via an explicit size
// spec or TargetMod on a later pass, never via this span alone.
func (g *GeneralItem) SpanValue(span bytecode.SpanID, itemOffset, itemLen int) int64 {
	if !g.Disp.Expr.Known {
		return 0
	}
	return g.Disp.Expr.Integer
}

// Expand implements bytecode.Spannable: mod 01 upgrades to mod 10 exactly
// once, widening the displacement from 8 bits to the address word size.
func (g *GeneralItem) Expand(span bytecode.SpanID, oldVal, newVal int64) (int, bytecode.SpanThreshold, bool) {
	g.DispMod = 2
	g.ModRM = (g.ModRM &^ 0xC0) | (2 << 6)
	g.Disp.SizeBits = g.AddrWordBits
	return g.length(), bytecode.SpanThreshold{Neg: -1 << 31, Pos: 1<<31 - 1}, false
}

// Finalize implements bytecode.Spannable.
func (g *GeneralItem) Finalize(itemOffset, itemLen int) {
	g.finalOff = itemOffset
	g.finalLen = itemLen
}

// Output implements bytecode.Spannable.
func (g *GeneralItem) Output(out []byte) []byte {
	out = append(out, g.Prefixes...)
	out = append(out, g.VEX...)
	out = append(out, g.Opcode...)
	if g.HasModRM {
		out = append(out, g.ModRM)
	}
	if g.HasSIB {
		out = append(out, g.SIB)
	}
	if g.HasDisp {
		out = appendIntLE(out, g.dispValue(), g.dispBytes())
	}
	if g.IsMoffs {
		out = appendIntLE(out, dispInt(g.MoffsVal), g.MoffsVal.SizeBits/8)
	}
	for _, im := range g.Imms {
		out = appendIntLE(out, dispInt(im.val), im.sizeBits/8)
	}
	return out
}

// dispValue resolves the bytes actually written for the displacement
// field: a RIP-relative displacement is not a static value at all but the
// distance from the end of this (now fully laid-out) instruction to the
// referenced target, so it can only be computed here, once Finalize has
// recorded this item's real offset and length — the same position-
// dependence internal/encoder/jump.RelJump resolves for a branch target.
func (g *GeneralItem) dispValue() int64 {
	if g.Disp.Relative {
		if !g.Disp.Expr.Known {
			return 0
		}
		return g.Disp.Expr.Integer - int64(g.finalOff+g.finalLen)
	}
	return dispInt(g.Disp)
}

func dispInt(v value.Value) int64 {
	if v.Expr.Known {
		return v.Expr.Integer
	}
	return 0
}

func appendIntLE(out []byte, v int64, n int) []byte {
	for i := 0; i < n; i++ {
		out = append(out, byte(v>>(8*uint(i))))
	}
	return out
}

// relocations returns one Relocation per still-unresolved (symbolic) field,
// at that field's byte offset within the item as laid out right now. Built
// once, before any span growth, since every relocatable field here (a full
// 16/32/64-bit displacement or immediate) is already at its final size by
// the time a real object-writer would need the record; only the already-
// narrow, never-relocated 8-bit disp guess could in principle still move,
// and an 8-bit field is never itself a valid relocation target.
func (g *GeneralItem) relocations() []bytecode.Relocation {
	var relocs []bytecode.Relocation
	off := len(g.Prefixes) + len(g.VEX) + len(g.Opcode)
	if g.HasModRM {
		off++
	}
	if g.HasSIB {
		off++
	}
	if g.HasDisp {
		if g.Disp.NeedsRelocation() {
			relocs = append(relocs, bytecode.Relocation{Value: g.Disp, Offset: off})
		}
		off += g.dispBytes()
	}
	if g.IsMoffs {
		if g.MoffsVal.NeedsRelocation() {
			relocs = append(relocs, bytecode.Relocation{Value: g.MoffsVal, Offset: off})
		}
		off += g.MoffsVal.SizeBits / 8
	}
	for _, im := range g.Imms {
		if im.val.NeedsRelocation() {
			relocs = append(relocs, bytecode.Relocation{Value: im.val, Offset: off})
		}
		off += im.sizeBits / 8
	}
	return relocs
}
