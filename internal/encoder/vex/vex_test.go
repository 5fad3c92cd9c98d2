package vex

import (
	"testing"

	"github.com/keurnel/x86enc/internal/encoder/opcode"
)

// vaddps ymm1, ymm2, ymm3 -> C5 EC 58 CB: two-byte VEX allowed because
// REX.X=REX.B=REX.W=0 and mmmmm=1 (spec.md §8 example 8).
func TestBuild_ShortensToTwoByte(t *testing.T) {
	op := opcode.New(0x58)
	f := Fields{Kind: KindVEX, L256: true, PP: PPNone, MMMMM: 1, Vvvv: 2}
	got := Build(f, &op)
	want := []byte{0xC5, 0xEC}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestBuild_ThreeByteWhenExtensionBitsSet(t *testing.T) {
	op := opcode.New(0x58)
	f := Fields{Kind: KindVEX, MMMMM: 1, RexB: 1}
	got := Build(f, &op)
	if len(got) != 3 {
		t.Fatalf("expected a 3-byte VEX, got %v", got)
	}
	if got[0] != 0xC4 {
		t.Errorf("first byte = %#x, want 0xC4", got[0])
	}
}

func TestBuild_XOPNeverShortens(t *testing.T) {
	op := opcode.New(0x00)
	f := Fields{Kind: KindXOP, MMMMM: 1}
	got := Build(f, &op)
	if len(got) != 3 || got[0] != 0x8F {
		t.Errorf("got %v, want a 3-byte XOP starting with 0x8F", got)
	}
}
