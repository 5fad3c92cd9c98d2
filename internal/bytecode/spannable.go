package bytecode

// SpanThreshold is the `[neg, pos]` pair a span is compared against when
// its driving value changes: the resolver re-invokes Expand once the
// tracked value falls outside `[neg, pos]`.
type SpanThreshold struct {
	Neg int64
	Pos int64
}

// SpanID identifies one span registered by a Spannable's CalcLen, scoped
// to that Spannable instance.
type SpanID int

// Registrar is handed to CalcLen so a Spannable can register one span per
// size-dependent field (spec.md §4.5: "one for the EA displacement ...
// one for the SIMM8 immediate").
type Registrar interface {
	AddSpan(threshold SpanThreshold) SpanID
}

// Spannable is a bytecode item whose final length depends on values that
// may not be known until other items have been placed: EA displacements
// and SIMM8 immediates that may need to grow past their provisional size.
//
// CalcLen/Expand must be pure functions of the item's own stored state
// plus the values the resolver supplies (spec.md §9: "those calls are
// pure functions of the bytecode's stored state plus provided span values
// and must be idempotent when given identical inputs").
type Spannable interface {
	// CalcLen returns the item's current provisional byte length, having
	// registered a span via reg for each field that might still grow.
	CalcLen(reg Registrar) int

	// Expand is called when a tracked value has moved outside its span's
	// threshold. It returns the item's new byte length and updated
	// threshold, and reports via keep whether this span must still be
	// watched (false once the field has reached its maximum size and can
	// no longer grow).
	Expand(span SpanID, oldVal, newVal int64) (newLen int, newThreshold SpanThreshold, keep bool)

	// SpanValue returns the value a span currently tracks (an EA
	// displacement or a relative jump distance), given the item's own
	// byte offset within the container and its current length. The
	// resolver re-derives this after every placement pass and feeds it
	// back as Expand's newVal once it falls outside the span's threshold.
	SpanValue(span SpanID, itemOffset, itemLen int) int64

	// Output appends this item's final, fully-resolved bytes to out.
	Output(out []byte) []byte

	// Finalize is called once, after the resolver has stopped growing any
	// span, with the item's settled container offset and length, so the
	// item can commit any derived state (e.g. a jump's final displacement
	// base) before Output is called.
	Finalize(itemOffset, itemLen int)
}
