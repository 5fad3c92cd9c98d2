package bytecode

// itemRegistrar implements Registrar for a single Item's CalcLen call,
// recording each span's initial threshold so the resolver can later test
// and grow it.
type itemRegistrar struct {
	item *Item
	next SpanID
}

func (r *itemRegistrar) AddSpan(threshold SpanThreshold) SpanID {
	id := r.next
	r.next++
	r.item.SpanIDs = append(r.item.SpanIDs, id)
	r.item.thresholds = append(r.item.thresholds, threshold)
	return id
}

// CalcLen runs an item's Spannable.CalcLen (for fixed items, it is a
// no-op returning the stored length) and records the resulting spans and
// provisional length on the item itself.
func (it *Item) CalcLen() {
	if it.IsFixed() {
		it.Len = len(it.Fixed)
		return
	}
	it.SpanIDs = it.SpanIDs[:0]
	it.thresholds = it.thresholds[:0]
	reg := &itemRegistrar{item: it}
	it.Len = it.Span.CalcLen(reg)
}
