// Package resolver implements the iterative span-resolution driver of
// spec.md §4.5/§9: it repeatedly lays out a Container's items, re-derives
// each registered span's tracked value from the resulting offsets, and
// calls Expand wherever a value has escaped its threshold, until a full
// pass produces no further growth.
//
// Grounded on the span-resolver protocol described in spec.md §4.5 and
// the general relaxation-assembler shape of v0/kasm/codegen_passes.go's
// multi-pass layout loop; the teacher's passes are sequential compiler
// stages rather than a fixed-point span grower, so this driver is built
// fresh from the documented protocol rather than copied.
package resolver

import "github.com/keurnel/x86enc/internal/bytecode"

// MaxPasses bounds the resolver loop; span growth is monotonic (spans
// only ever grow, never shrink, per spec.md §9) and every bytecode has at
// most a handful of spans, so a runaway loop means an Expand
// implementation that never reports keep=false.
const MaxPasses = 64

// Resolve lays out c's items and grows spans to a fixed point, then calls
// Finalize on every Spannable item and returns the number of passes it
// took (1 means no span ever grew past its initial CalcLen).
func Resolve(c *bytecode.Container) int {
	items := c.Items()

	for _, it := range items {
		it.CalcLen()
	}

	pass := 1
	for {
		offset := 0
		for _, it := range items {
			it.Offset = offset
			offset += it.Len
		}

		grew := false
		for _, it := range items {
			if it.IsFixed() {
				continue
			}
			grew = growItem(it) || grew
		}
		if !grew {
			break
		}
		pass++
		if pass > MaxPasses {
			break
		}
	}

	offset := 0
	for _, it := range items {
		it.Offset = offset
		offset += it.Len
		if !it.IsFixed() {
			it.Span.Finalize(it.Offset, it.Len)
		}
	}
	return pass
}

// growItem re-derives every span value on it and expands any that has
// moved outside its threshold, reporting whether the item's length
// changed.
func growItem(it *bytecode.Item) bool {
	changed := false
	for i, id := range it.SpanIDs {
		th := it.Thresholds()[i]
		val := it.Span.SpanValue(id, it.Offset, it.Len)
		if val >= th.Neg && val <= th.Pos {
			continue
		}
		oldVal := it.LastValue(i)
		newLen, newTh, _ := it.Span.Expand(id, oldVal, val)
		it.Len = newLen
		it.SetThreshold(i, newTh, val)
		changed = true
	}
	return changed
}
