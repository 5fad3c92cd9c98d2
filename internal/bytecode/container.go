package bytecode

import (
	"bytes"
	"sync"
)

// Container is the caller-owned sequence of bytecode Items for one
// section: the encoder appends to it as it consumes each Insn, and the
// resolver (internal/resolver) walks it to grow spans and then serialise
// final bytes.
type Container struct {
	items   []*Item
	scratch sync.Pool
}

// New returns an empty Container.
func New() *Container {
	c := &Container{}
	c.scratch.New = func() any { return new(bytes.Buffer) }
	return c
}

// AppendFixed appends an already-resolved, fixed-length byte sequence.
func (c *Container) AppendFixed(b []byte, relocs ...Relocation) *Item {
	it := &Item{Fixed: append([]byte(nil), b...), Relocs: relocs, Len: len(b)}
	c.items = append(c.items, it)
	return it
}

// AppendSpan appends a Spannable item that participates in span
// resolution before its final length is known.
func (c *Container) AppendSpan(s Spannable, relocs ...Relocation) *Item {
	it := &Item{Span: s, Relocs: relocs}
	c.items = append(c.items, it)
	return it
}

// Items returns the container's items in emission order.
func (c *Container) Items() []*Item { return c.items }

// Len returns the sum of every item's current length.
func (c *Container) Len() int {
	n := 0
	for _, it := range c.items {
		n += it.Len
	}
	return n
}

// Relocations collects every item's relocations, adjusted to a
// whole-container byte offset. Call after resolution has settled so
// offsets are final.
func (c *Container) Relocations() []Relocation {
	var out []Relocation
	for _, it := range c.items {
		for _, r := range it.Relocs {
			out = append(out, Relocation{Value: r.Value, Offset: it.Offset + r.Offset})
		}
	}
	return out
}

// Output serialises every item's final bytes in order.
func (c *Container) Output() []byte {
	out := make([]byte, 0, c.Len())
	for _, it := range c.items {
		if it.IsFixed() {
			out = append(out, it.Fixed...)
			continue
		}
		out = it.Span.Output(out)
	}
	return out
}

// Scratch acquires a reusable, zeroed scratch buffer. Callers must call
// the returned release function when done; it resets and returns the
// buffer to the pool rather than discarding it (spec.md §9's "scoped
// acquisition of scratch buffers" hint).
func (c *Container) Scratch() (buf *bytes.Buffer, release func()) {
	buf = c.scratch.Get().(*bytes.Buffer)
	buf.Reset()
	return buf, func() {
		buf.Reset()
		c.scratch.Put(buf)
	}
}
