package opcode

import "testing"

func TestBuffer_AddMaskMerge(t *testing.T) {
	b := New(0x50)

	b.Add(0, 1) // PUSH RCX -> opcode 0x51
	if b.Bytes[0] != 0x51 {
		t.Errorf("Add: got %#x, want 0x51", b.Bytes[0])
	}

	b.Mask(0, 0xF0)
	if b.Bytes[0] != 0x50 {
		t.Errorf("Mask: got %#x, want 0x50", b.Bytes[0])
	}

	b.Merge(0, 0x0F)
	if b.Bytes[0] != 0x5F {
		t.Errorf("Merge: got %#x, want 0x5F", b.Bytes[0])
	}
}

func TestBuffer_MakeAlt1(t *testing.T) {
	// PUSH imm8 (0x6A) with an imm32 alternate (0x68) stashed at index 1.
	b := New(0x6A, 0x68)
	b.Len = 1
	b.Bytes[1] = 0x68

	b.MakeAlt1()
	if b.Len != 1 || b.Bytes[0] != 0x68 {
		t.Errorf("MakeAlt1: got {Bytes:%v Len:%d}, want {Bytes:[0x68 ...] Len:1}", b.Bytes, b.Len)
	}
}

func TestBuffer_MakeAlt2(t *testing.T) {
	// Three-byte VEX 0xC4 <byte1> <byte2> shortened to 0xC5 <byte>.
	b := New(0xC4, 0xE1, 0x58)
	b.MakeAlt2()

	if b.Len != 2 {
		t.Fatalf("expected Len=2, got %d", b.Len)
	}
	if b.Bytes[0] != 0xE1 || b.Bytes[1] != 0x58 {
		t.Errorf("MakeAlt2: got %v, want [0xE1 0x58 ...]", b.Bytes)
	}
}

func TestBuffer_ToBytes(t *testing.T) {
	b := New(0x0F, 0x1F)
	out := b.ToBytes([]byte{0x90})
	want := []byte{0x90, 0x0F, 0x1F}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, out[i], want[i])
		}
	}
}
