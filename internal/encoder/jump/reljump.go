// Package jump implements the jump encoder of spec.md §4.6: the relative
// jump bytecode (span-resolved SHORT/NEAR selection) and the fixed-length
// far jump.
//
// Grounded on the jump-encoding prose of spec.md §4.6 directly; no single
// teacher file factors a jump encoder out of its codegen pass, so this is
// built fresh in the style of internal/bytecode.Spannable, matching the
// teacher's preference for small table-driven value types over a class
// hierarchy.
package jump

import (
	"github.com/keurnel/x86enc/internal/bytecode"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// Mode is the chosen relative-jump encoding width.
type Mode int

const (
	ModeShort Mode = iota
	ModeNear
)

// RelJump is the span-resolved bytecode for a relative jump (spec.md
// §4.6, `JmpRel`): it stores both candidate opcodes, carries the target
// as a Value, and participates in span resolution to grow SHORT to NEAR.
type RelJump struct {
	Prefixes   []byte
	ShortOp    []byte
	NearOp     []byte
	OperSize16 bool // near displacement is 2 bytes if true, else 4
	Mode       Mode
	Target     value.Value // Target.Expr.Known: absolute byte offset within the container
	loc        diag.Location
	finalOff   int
	finalLen   int
}

// New selects the jump's initial mode per spec.md §4.6: honour an
// explicit SHORT/NEAR target modifier (failing CodeMissingJumpForm if
// that form is unavailable), otherwise prefer SHORT when both are
// defined — the span resolver upgrades it later if needed.
func New(shortOp, nearOp []byte, operSize16 bool, target value.Value, modifier reg.TargetModifier, sink *diag.Sink, loc diag.Location) (*RelJump, bool) {
	rj := &RelJump{
		ShortOp:    shortOp,
		NearOp:     nearOp,
		OperSize16: operSize16,
		Target:     target,
		loc:        loc,
	}
	switch modifier {
	case reg.TargetModShort:
		if len(shortOp) == 0 {
			sink.Error(diag.CodeMissingJumpForm, loc, "no SHORT form of this jump is available")
			return nil, false
		}
		rj.Mode = ModeShort
	case reg.TargetModNear:
		if len(nearOp) == 0 {
			sink.Error(diag.CodeMissingJumpForm, loc, "no NEAR form of this jump is available")
			return nil, false
		}
		rj.Mode = ModeNear
	default:
		switch {
		case len(shortOp) > 0:
			rj.Mode = ModeShort
		case len(nearOp) > 0:
			rj.Mode = ModeNear
		default:
			sink.Error(diag.CodeMissingJumpForm, loc, "neither SHORT nor NEAR form of this jump is available")
			return nil, false
		}
	}
	if !target.Expr.Known && rj.Mode == ModeShort && len(nearOp) > 0 {
		// An external or cross-container target cannot be range-checked
		// at assembly time; force NEAR immediately (spec.md §4.6 finalize).
		rj.Mode = ModeNear
	}
	return rj, true
}

func (rj *RelJump) dispSizeBits() int {
	if rj.Mode == ModeShort {
		return 8
	}
	if rj.OperSize16 {
		return 16
	}
	return 32
}

func (rj *RelJump) opcodeLen() int {
	if rj.Mode == ModeShort {
		return len(rj.ShortOp)
	}
	return len(rj.NearOp)
}

// CalcLen implements bytecode.Spannable.
func (rj *RelJump) CalcLen(r bytecode.Registrar) int {
	length := len(rj.Prefixes) + rj.opcodeLen() + rj.dispSizeBits()/8
	if rj.Mode == ModeShort && len(rj.NearOp) > 0 {
		r.AddSpan(bytecode.SpanThreshold{Neg: -128, Pos: 127})
	}
	return length
}

// SpanValue implements bytecode.Spannable: the tracked value is the
// signed displacement the jump would currently encode.
func (rj *RelJump) SpanValue(span bytecode.SpanID, itemOffset, itemLen int) int64 {
	if !rj.Target.Expr.Known {
		return 0
	}
	return rj.Target.Expr.Integer - int64(itemOffset+itemLen)
}

// Expand implements bytecode.Spannable: SHORT upgrades to NEAR exactly
// once, per spec.md §4.6 ("return false, no further expansion").
func (rj *RelJump) Expand(span bytecode.SpanID, oldVal, newVal int64) (int, bytecode.SpanThreshold, bool) {
	rj.Mode = ModeNear
	newLen := len(rj.Prefixes) + rj.opcodeLen() + rj.dispSizeBits()/8
	return newLen, bytecode.SpanThreshold{Neg: -1 << 31, Pos: 1<<31 - 1}, false
}

// Finalize implements bytecode.Spannable: it records the settled
// container offset and length, which Output needs to compute the final
// displacement relative to the end of this instruction.
func (rj *RelJump) Finalize(itemOffset, itemLen int) {
	rj.finalOff = itemOffset
	rj.finalLen = itemLen
}

// Output implements bytecode.Spannable: writes prefixes, opcode, then the
// displacement (target minus the address of the byte following it).
func (rj *RelJump) Output(out []byte) []byte {
	out = append(out, rj.Prefixes...)
	if rj.Mode == ModeShort {
		out = append(out, rj.ShortOp...)
	} else {
		out = append(out, rj.NearOp...)
	}
	disp := int64(0)
	if rj.Target.Expr.Known {
		disp = rj.Target.Expr.Integer - int64(rj.finalOff+rj.finalLen)
	}
	return appendLE(out, disp, rj.dispSizeBits())
}

func appendLE(out []byte, v int64, bits int) []byte {
	n := bits / 8
	for i := 0; i < n; i++ {
		out = append(out, byte(v>>(8*uint(i))))
	}
	return out
}
