package frontend

import (
	"testing"

	"github.com/keurnel/x86enc/internal/config"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
	"github.com/keurnel/x86enc/internal/encoder/reg"
)

func TestParse_MovRegImm(t *testing.T) {
	sink := diag.NewSink("t.asm")
	ins := Parse("mov eax, 1\n", "t.asm", config.Default(), sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(ins) != 1 {
		t.Fatalf("got %d instructions, want 1", len(ins))
	}
	in := ins[0]
	if in.Mnemonic != "MOV" {
		t.Errorf("Mnemonic = %q, want MOV", in.Mnemonic)
	}
	if len(in.Operands) != 2 {
		t.Fatalf("got %d operands, want 2", len(in.Operands))
	}
	if in.Operands[0].Kind != operand.KindReg || in.Operands[0].Reg != reg.EAX {
		t.Errorf("operand 0 = %+v, want EAX", in.Operands[0])
	}
	if in.Operands[1].Kind != operand.KindImm || in.Operands[1].Imm.Integer != 1 {
		t.Errorf("operand 1 = %+v, want imm 1", in.Operands[1])
	}
}

// add rax, [rsp+8]: a based memory operand with a positive displacement.
func TestParse_MemBaseDisp(t *testing.T) {
	sink := diag.NewSink("t.asm")
	ins := Parse("add rax, [rsp+8]\n", "t.asm", config.Default(), sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(ins) != 1 {
		t.Fatalf("got %d instructions, want 1", len(ins))
	}
	mem := ins[0].Operands[1]
	if mem.Kind != operand.KindMem {
		t.Fatalf("operand 1 kind = %v, want KindMem", mem.Kind)
	}
	if len(mem.Mem.Terms) != 1 || mem.Mem.Terms[0].Reg != reg.RSP || mem.Mem.Terms[0].Mult != 1 {
		t.Errorf("Terms = %+v, want [{RSP 1}]", mem.Mem.Terms)
	}
	if !mem.Mem.HasDisp || mem.Mem.Disp.Integer != 8 {
		t.Errorf("Disp = %+v, want 8", mem.Mem.Disp)
	}
}

// A RIP-relative operand with an explicit size spec and a negative
// displacement: "qword ptr [rip-4]".
func TestParse_RipRelativeWithSizeSpec(t *testing.T) {
	sink := diag.NewSink("t.asm")
	ins := Parse("mov rax, qword ptr [rip-4]\n", "t.asm", config.Default(), sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	mem := ins[0].Operands[1]
	if mem.ExplicitSizeBits != 64 {
		t.Errorf("ExplicitSizeBits = %d, want 64", mem.ExplicitSizeBits)
	}
	if mem.Mem.WRT != "rip" || !mem.Mem.DispRelative {
		t.Errorf("Mem = %+v, want WRT=rip, DispRelative", mem.Mem)
	}
	if mem.Mem.Disp.Integer != -4 {
		t.Errorf("Disp = %d, want -4", mem.Mem.Disp.Integer)
	}
}

// A scaled-index memory operand plus a base register, in 16-bit mode:
// "mov [bx+si+4], ax" (spec.md §8 scenario 7's addressing shape).
func TestParse_16BitBaseIndex(t *testing.T) {
	cfg := config.Default()
	cfg.ModeBits = 16
	sink := diag.NewSink("t.asm")
	ins := Parse("mov [bx+si+4], ax\n", "t.asm", cfg, sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	mem := ins[0].Operands[0]
	if len(mem.Mem.Terms) != 2 {
		t.Fatalf("Terms = %+v, want 2 entries", mem.Mem.Terms)
	}
	if mem.Mem.Terms[0].Reg != reg.BX || mem.Mem.Terms[1].Reg != reg.SI {
		t.Errorf("Terms = %+v, want [BX SI]", mem.Mem.Terms)
	}
}

// "lock add [rax], ebx" carries the LOCK prefix ahead of the mnemonic.
func TestParse_LockPrefix(t *testing.T) {
	sink := diag.NewSink("t.asm")
	ins := Parse("lock add [rax], ebx\n", "t.asm", config.Default(), sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(ins[0].Prefixes) != 1 || ins[0].Prefixes[0] != prefix.Lock {
		t.Errorf("Prefixes = %+v, want [Lock]", ins[0].Prefixes)
	}
}

// A segment-override spelling ("fs:[rax]") sets both the instruction-wide
// SegOverride field and the folded Prefixes entry.
func TestParse_SegmentOverride(t *testing.T) {
	sink := diag.NewSink("t.asm")
	ins := Parse("mov eax, fs:[rax]\n", "t.asm", config.Default(), sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if ins[0].SegOverride == nil || ins[0].SegOverride.Name != reg.FS.Name {
		t.Errorf("SegOverride = %+v, want FS", ins[0].SegOverride)
	}
	found := false
	for _, p := range ins[0].Prefixes {
		if p.Kind == prefix.KindSegOverride {
			found = true
		}
	}
	if !found {
		t.Error("expected a KindSegOverride prefix entry")
	}
}

// A comment-only and a label line are both skipped; a blank line produces
// no instruction either.
func TestParse_SkipsCommentsAndLabels(t *testing.T) {
	sink := diag.NewSink("t.asm")
	src := "; a comment\nmain:\n\nmov eax, 1 ; trailing comment\n"
	ins := Parse(src, "t.asm", config.Default(), sink)
	if len(sink.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(ins) != 1 {
		t.Fatalf("got %d instructions, want 1", len(ins))
	}
}

func TestParse_UnknownMnemonic(t *testing.T) {
	sink := diag.NewSink("t.asm")
	ins := Parse("bogus eax, 1\n", "t.asm", config.Default(), sink)
	if len(ins) != 0 {
		t.Errorf("got %d instructions, want 0", len(ins))
	}
	errs := sink.Errors()
	if len(errs) != 1 || errs[0].Code() != diag.CodeUnknownMnemonic {
		t.Errorf("Errors = %+v, want one CodeUnknownMnemonic", errs)
	}
}
