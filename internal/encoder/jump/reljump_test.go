package jump

import (
	"testing"

	"github.com/keurnel/x86enc/internal/bytecode"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
	"github.com/keurnel/x86enc/internal/resolver"
)

func newLoc() (*diag.Sink, diag.Location) {
	s := diag.NewSink("t.asm")
	return s, s.Loc(1, 0)
}

// jmp short $+2 -> EB 00 (spec.md §8 example 4).
func TestRelJump_ExplicitShort(t *testing.T) {
	sink, l := newLoc()
	target := value.Value{Expr: value.KnownInt(2)}
	rj, ok := New([]byte{0xEB}, nil, false, target, reg.TargetModShort, sink, l)
	if !ok {
		t.Fatalf("New failed: %v", sink.Errors())
	}
	c := bytecode.New()
	c.AppendSpan(rj)
	resolver.Resolve(c)

	out := c.Output()
	want := []byte{0xEB, 0x00}
	assertBytes(t, out, want)
}

// jmp $+130 exceeds the short-jump range and upgrades to NEAR -> E9 7D 00 00 00
// (spec.md §8 example 5).
func TestRelJump_UpgradesShortToNear(t *testing.T) {
	sink, l := newLoc()
	target := value.Value{Expr: value.KnownInt(130)}
	rj, ok := New([]byte{0xEB}, []byte{0xE9}, false, target, reg.TargetModNone, sink, l)
	if !ok {
		t.Fatalf("New failed: %v", sink.Errors())
	}
	c := bytecode.New()
	c.AppendSpan(rj)
	passes := resolver.Resolve(c)
	if passes < 2 {
		t.Errorf("expected at least 2 passes to upgrade SHORT to NEAR, got %d", passes)
	}
	if rj.Mode != ModeNear {
		t.Fatal("expected the jump to have upgraded to NEAR")
	}

	out := c.Output()
	want := []byte{0xE9, 0x7D, 0x00, 0x00, 0x00}
	assertBytes(t, out, want)
}

func TestRelJump_MissingShortFormFails(t *testing.T) {
	sink, l := newLoc()
	target := value.Value{Expr: value.KnownInt(2)}
	_, ok := New(nil, []byte{0xE9}, false, target, reg.TargetModShort, sink, l)
	if ok {
		t.Fatal("expected New to fail when SHORT is requested but unavailable")
	}
	if sink.Errors()[0].Code() != diag.CodeMissingJumpForm {
		t.Errorf("expected CodeMissingJumpForm, got %v", sink.Errors()[0].Code())
	}
}

func TestFarJump_Bytes(t *testing.T) {
	fj := FarJump{Opcode: []byte{0xEA}, Offset: 0x1234, Segment: 0x0010}
	got := fj.Bytes()
	want := []byte{0xEA, 0x34, 0x12, 0x00, 0x00, 0x10, 0x00}
	assertBytes(t, got, want)
}

func assertBytes(t *testing.T, got, want []byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}
