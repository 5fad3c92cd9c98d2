package resolver

import (
	"testing"

	"github.com/keurnel/x86enc/internal/bytecode"
)

// growingImm simulates an immediate that starts 1-byte wide (SIMM8) and
// must expand to 4 bytes once the tracked value no longer fits in
// [-128,127] — the canonical span-resolver scenario of spec.md §4.5.
type growingImm struct {
	value    int64
	expanded bool
}

func (g *growingImm) CalcLen(reg bytecode.Registrar) int {
	reg.AddSpan(bytecode.SpanThreshold{Neg: -128, Pos: 127})
	if g.expanded {
		return 4
	}
	return 1
}

func (g *growingImm) Expand(span bytecode.SpanID, oldVal, newVal int64) (int, bytecode.SpanThreshold, bool) {
	g.expanded = true
	return 4, bytecode.SpanThreshold{Neg: -1 << 31, Pos: 1<<31 - 1}, false
}

func (g *growingImm) SpanValue(span bytecode.SpanID, itemOffset, itemLen int) int64 {
	return g.value
}

func (g *growingImm) Output(out []byte) []byte {
	if g.expanded {
		return append(out, byte(g.value), 0, 0, 0)
	}
	return append(out, byte(g.value))
}

func (g *growingImm) Finalize(itemOffset, itemLen int) {}

func TestResolve_GrowsSpanPastThreshold(t *testing.T) {
	c := bytecode.New()
	imm := &growingImm{value: 1000} // outside [-128,127] from the start
	c.AppendSpan(imm)

	passes := Resolve(c)
	if passes < 2 {
		t.Errorf("expected at least 2 passes to grow the span, got %d", passes)
	}
	if !imm.expanded {
		t.Fatal("expected the immediate to have expanded to 4 bytes")
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}

func TestResolve_NoGrowthNeeded(t *testing.T) {
	c := bytecode.New()
	imm := &growingImm{value: 5}
	c.AppendSpan(imm)

	passes := Resolve(c)
	if passes != 1 {
		t.Errorf("expected 1 pass when no span needs to grow, got %d", passes)
	}
	if imm.expanded {
		t.Error("did not expect the immediate to expand")
	}
}
