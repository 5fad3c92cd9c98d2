package bytecode

import "testing"

func TestContainer_AppendFixedAndOutput(t *testing.T) {
	c := New()
	c.AppendFixed([]byte{0x90})
	c.AppendFixed([]byte{0x0F, 0x1F, 0x00})

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	out := c.Output()
	want := []byte{0x90, 0x0F, 0x1F, 0x00}
	if len(out) != len(want) {
		t.Fatalf("Output() = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, out[i], want[i])
		}
	}
}

func TestContainer_Relocations(t *testing.T) {
	c := New()
	c.AppendFixed([]byte{0x90})
	c.AppendFixed([]byte{0xB8, 0, 0, 0, 0}, Relocation{Offset: 1})

	for _, it := range c.Items() {
		it.CalcLen()
	}
	offset := 0
	for _, it := range c.Items() {
		it.Offset = offset
		offset += it.Len
	}

	relocs := c.Relocations()
	if len(relocs) != 1 {
		t.Fatalf("expected one relocation, got %d", len(relocs))
	}
	if relocs[0].Offset != 2 { // second item starts at byte 1, reloc is +1 within it
		t.Errorf("Offset = %d, want 2", relocs[0].Offset)
	}
}

func TestContainer_Scratch(t *testing.T) {
	c := New()
	buf, release := c.Scratch()
	buf.WriteByte(0xAA)
	release()

	buf2, release2 := c.Scratch()
	defer release2()
	if buf2.Len() != 0 {
		t.Errorf("expected a reset scratch buffer, got len %d", buf2.Len())
	}
}
