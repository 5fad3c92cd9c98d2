package lookup

import (
	"testing"

	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

func TestLookup_Mnemonic(t *testing.T) {
	res := Lookup("MOV", DialectNASM)
	if res.Kind != KindGroup || res.Group.Mnemonic != "MOV" {
		t.Fatalf("got %+v, want MOV group", res)
	}
}

func TestLookup_GASMnemonicSuffix(t *testing.T) {
	res := Lookup("movl", DialectGAS)
	if res.Kind != KindGroup || res.Group.Mnemonic != "MOV" {
		t.Fatalf("got %+v, want MOV group from 'movl'", res)
	}
}

func TestLookup_Register(t *testing.T) {
	res := Lookup("RAX", DialectNASM)
	if res.Kind != KindRegister || res.Register != reg.RAX {
		t.Fatalf("got %+v, want RAX", res)
	}
}

func TestLookup_GASRegisterPercent(t *testing.T) {
	res := Lookup("%rax", DialectGAS)
	if res.Kind != KindRegister || res.Register != reg.RAX {
		t.Fatalf("got %+v, want RAX from '%%rax'", res)
	}
}

func TestLookup_XMM(t *testing.T) {
	res := Lookup("xmm7", DialectNASM)
	if res.Kind != KindRegister || res.Register != reg.XMM[7] {
		t.Fatalf("got %+v, want XMM[7]", res)
	}
}

func TestLookup_TargetModifier(t *testing.T) {
	res := Lookup("short", DialectNASM)
	if res.Kind != KindTargetModifier || res.Modifier != reg.TargetModShort {
		t.Fatalf("got %+v, want TargetModShort", res)
	}
}

func TestLookup_Prefix(t *testing.T) {
	res := Lookup("lock", DialectNASM)
	if res.Kind != KindPrefix {
		t.Fatalf("got %+v, want a prefix", res)
	}
}

func TestLookup_Segment(t *testing.T) {
	res := Lookup("fs", DialectNASM)
	if res.Kind != KindSegment || res.Segment != reg.FS {
		t.Fatalf("got %+v, want FS", res)
	}
}

func TestLookup_NotFound(t *testing.T) {
	res := Lookup("bogusname", DialectNASM)
	if res.Kind != KindNone {
		t.Fatalf("got %+v, want KindNone", res)
	}
}

func TestGateGroup_RejectsSYSCALLOutside64(t *testing.T) {
	sink := diag.NewSink("t.asm")
	res := Lookup("SYSCALL", DialectNASM)
	if res.Kind != KindGroup {
		t.Fatal("expected SYSCALL to resolve to a group")
	}
	if GateGroup(res.Group, 32, cpu.Modern386_64, diag.Location{}, sink) {
		t.Error("expected SYSCALL to be gated out in 32-bit mode")
	}
	if !sink.HasErrors() {
		t.Error("expected an error to be recorded")
	}
}

func TestGateGroup_AllowsSYSCALLIn64(t *testing.T) {
	sink := diag.NewSink("t.asm")
	res := Lookup("SYSCALL", DialectNASM)
	if !GateGroup(res.Group, 64, cpu.Modern386_64, diag.Location{}, sink) {
		t.Error("expected SYSCALL to be allowed in 64-bit mode")
	}
	if sink.HasErrors() {
		t.Error("expected no error")
	}
}

func TestGateGroup_RejectsMissingCPUFeature(t *testing.T) {
	sink := diag.NewSink("t.asm")
	res := Lookup("VADDPS", DialectNASM)
	if res.Kind != KindGroup {
		t.Fatal("expected VADDPS to resolve to a group")
	}
	if GateGroup(res.Group, 64, cpu.Baseline, diag.Location{}, sink) {
		t.Error("expected VADDPS to be gated out without AVX in the mask")
	}
}
