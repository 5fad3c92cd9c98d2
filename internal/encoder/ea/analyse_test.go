package ea

import (
	"testing"

	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

func loc() (diag.Location, *diag.Sink) {
	sink := diag.NewSink("t.asm")
	return sink.Loc(1, 0), sink
}

// add rax, [rsp+8] -> ModR/M=44, SIB=24, disp8=08 (spec.md §8 example 6).
func TestAnalyse_RSPBaseDisp8(t *testing.T) {
	l, sink := loc()
	expr := Expr{
		Terms:   []Term{{Reg: reg.RSP, Mult: 1}},
		Disp:    value.KnownInt(8),
		HasDisp: true,
	}
	res, ok := Analyse(expr, Options{ModeBits: 64}, sink, l)
	if !ok {
		t.Fatalf("Analyse failed: %v", sink.Errors())
	}
	if res.ModRM != 0x44 {
		t.Errorf("ModRM = %#x, want 0x44", res.ModRM)
	}
	if !res.HasSIB || res.SIB != 0x24 {
		t.Errorf("SIB = (has=%v) %#x, want 0x24", res.HasSIB, res.SIB)
	}
	if !res.HasDisp || res.Disp.SizeBits != 8 || res.Disp.Expr.Integer != 8 {
		t.Errorf("Disp = %+v, want 8-bit disp=8", res.Disp)
	}
}

// 16-bit mode: [bx+si+4] -> ModR/M = 0x40 (mod01 reg000 rm000), disp8=4.
func TestAnalyse_16BitBXSI(t *testing.T) {
	l, sink := loc()
	expr := Expr{
		Terms:   []Term{{Reg: reg.BX, Mult: 1}, {Reg: reg.SI, Mult: 1}},
		Disp:    value.KnownInt(4),
		HasDisp: true,
	}
	res, ok := Analyse(expr, Options{ModeBits: 16, AddrSizeBits: 16}, sink, l)
	if !ok {
		t.Fatalf("Analyse failed: %v", sink.Errors())
	}
	if res.ModRM&0xC7 != 0x40 {
		t.Errorf("ModRM = %#x, want mod=01 rm=000 (&0xC7==0x40)", res.ModRM)
	}
}

func TestAnalyse_16BitIllegalCombination(t *testing.T) {
	l, sink := loc()
	expr := Expr{Terms: []Term{{Reg: reg.BX, Mult: 1}, {Reg: reg.BP, Mult: 1}}}
	_, ok := Analyse(expr, Options{ModeBits: 16, AddrSizeBits: 16}, sink, l)
	if ok {
		t.Fatal("expected BX+BP to be rejected as an illegal 16-bit combination")
	}
	if len(sink.Errors()) != 1 || sink.Errors()[0].Code() != diag.CodeInvalidEA {
		t.Errorf("expected CodeInvalidEA, got %v", sink.Errors())
	}
}

// RIP-relative: mod=00 rm=5 with a 32-bit signed displacement.
func TestAnalyse_RIPRelative(t *testing.T) {
	l, sink := loc()
	expr := Expr{WRT: "rip", Disp: value.Unresolved("buf"), HasDisp: true}
	res, ok := Analyse(expr, Options{ModeBits: 64}, sink, l)
	if !ok {
		t.Fatalf("Analyse failed: %v", sink.Errors())
	}
	if res.ModRM != 0x05 || !res.IPRelative {
		t.Errorf("ModRM = %#x IPRelative=%v, want 0x05 true", res.ModRM, res.IPRelative)
	}
	if res.Disp.SizeBits != 32 {
		t.Errorf("Disp.SizeBits = %d, want 32", res.Disp.SizeBits)
	}
}

func TestAnalyse_RIPRelativeNot64Mode(t *testing.T) {
	l, sink := loc()
	expr := Expr{WRT: "rip", Disp: value.KnownInt(0), HasDisp: true}
	_, ok := Analyse(expr, Options{ModeBits: 32}, sink, l)
	if ok {
		t.Fatal("expected RIP-relative addressing to be rejected outside 64-bit mode")
	}
	if sink.Errors()[0].Code() != diag.CodeRipRelNot64Mode {
		t.Errorf("expected CodeRipRelNot64Mode, got %v", sink.Errors()[0].Code())
	}
}

// ESP/R12 as base forces a SIB byte with index field = 4 (no index).
func TestAnalyse_R12BaseForcesSIB(t *testing.T) {
	l, sink := loc()
	expr := Expr{Terms: []Term{{Reg: reg.R12, Mult: 1}}}
	res, ok := Analyse(expr, Options{ModeBits: 64}, sink, l)
	if !ok {
		t.Fatalf("Analyse failed: %v", sink.Errors())
	}
	if !res.HasSIB {
		t.Fatal("expected R12 base to force a SIB byte")
	}
	if (res.SIB>>3)&0x7 != 4 {
		t.Errorf("SIB index field = %d, want 4 (none)", (res.SIB>>3)&0x7)
	}
}

func TestAnalyse_EBPBaseForcesNonzeroDisp(t *testing.T) {
	l, sink := loc()
	expr := Expr{Terms: []Term{{Reg: reg.EBP, Mult: 1}}}
	res, ok := Analyse(expr, Options{ModeBits: 32}, sink, l)
	if !ok {
		t.Fatalf("Analyse failed: %v", sink.Errors())
	}
	if res.DispMod != 1 || !res.HasDisp {
		t.Errorf("expected a forced 8-bit zero displacement for EBP base, got mod=%d hasDisp=%v", res.DispMod, res.HasDisp)
	}
}

func TestAnalyse_ScaleDecomposition(t *testing.T) {
	l, sink := loc()
	// [rax*3] decomposes to base=rax, index=rax*2.
	expr := Expr{Terms: []Term{{Reg: reg.RAX, Mult: 3}}}
	res, ok := Analyse(expr, Options{ModeBits: 64}, sink, l)
	if !ok {
		t.Fatalf("Analyse failed: %v", sink.Errors())
	}
	if !res.HasSIB {
		t.Fatal("expected the *3 decomposition to require a SIB byte")
	}
	if (res.SIB>>6)&0x3 != 1 {
		t.Errorf("SIB scale field = %d, want 1 (x2)", (res.SIB>>6)&0x3)
	}
}

func TestAnalyse_TwoBaseRegistersRejected(t *testing.T) {
	l, sink := loc()
	expr := Expr{Terms: []Term{{Reg: reg.RAX, Mult: 1}, {Reg: reg.RBX, Mult: 1}}}
	_, ok := Analyse(expr, Options{ModeBits: 64}, sink, l)
	if ok {
		t.Fatal("expected two base registers to be rejected")
	}
	if sink.Errors()[0].Code() != diag.CodeEATooComplex {
		t.Errorf("expected CodeEATooComplex, got %v", sink.Errors()[0].Code())
	}
}
