// Package encoder implements the general and jump encoders of spec.md
// §4.5/§4.6: given a matched Insn+InsnForm pair, walk the form's
// modifiers and operand actions, fold the legacy prefixes, apply the
// VEX/XOP transform, and append either a fixed byte sequence or a
// span-resolved bytecode item to the caller's Container.
//
// Grounded on spec.md §4.5's eight-step sequence directly: no single
// teacher file factors "apply a static recipe against live operands" out
// as its own stage, since the teacher's codegen inlines opcode assembly
// per instruction family rather than building one data-driven dispatcher.
// The per-field accumulator (ctx below) mirrors internal/encoder/ea's own
// register+mod/rm+REX accumulation style, generalised to a whole
// instruction instead of one operand.
package encoder

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/opcode"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
	"github.com/keurnel/x86enc/internal/encoder/table"
	"github.com/keurnel/x86enc/internal/encoder/value"
	"github.com/keurnel/x86enc/internal/encoder/vex"
)

// immField is one recorded immediate operand, in encounter order.
type immField struct {
	val      value.Value
	sizeBits int
	signed   bool
	post     table.PostAction
}

// ctx accumulates the mutable state the general encoder builds up while
// walking a matched InsnForm's modifiers (spec.md §4.5 step 1) and
// operand actions (step 3), before segment/prefix folding and VEX
// transform (steps 4-7) and emission (step 8) consume it.
type ctx struct {
	in   *insn.Insn
	form table.InsnForm

	op      opcode.Buffer
	altByte byte
	haveAlt bool // true once a ModImm8 modifier has recorded an alt opcode byte

	spareDigit int
	spareSet   bool

	useVEX  bool
	vexInfo table.VEXInfo
	vvvv    byte
	vexRexR byte
	vexRexX byte
	vexRexB byte

	lastMemRexX byte // most recent applyMemEA's Result.RexX/RexB, consumed by applyEAVEX
	lastMemRexB byte

	hasModRM bool
	modRM    byte
	hasSIB   bool
	sib      byte

	hasDisp      bool
	disp         value.Value
	dispSizeBits int
	dispMod      byte // 0/1/2; 3 means "register direct, no disp" and is never stored here

	isMoffs  bool
	moffsVal value.Value

	eaAddrSize int // the last memory operand's resolved address size (16/32/64), 0 if none seen

	imms []immField

	operSizeOverride int // form.DefaultOperSize, 0 if none
	operSize64       int // form.DefaultOperSize64
	forceAddrSize    int // 0, else a PostA16/AdSizeR-forced address size

	rex byte // 0 = nothing yet; prefix.RexPoison = AH/BH/CH/DH forbids REX entirely

	sink *diag.Sink
	loc  diag.Location

	ok bool
}

func newCtx(in *insn.Insn, form table.InsnForm, sink *diag.Sink, loc diag.Location) *ctx {
	return &ctx{
		in:               in,
		form:             form,
		op:               opcode.New(form.Opcode...),
		spareDigit:       form.SpareDigit,
		useVEX:           table.IsVEX(form.SpecialPrefix) || table.IsXOP(form.SpecialPrefix),
		vexInfo:          form.VEX,
		operSizeOverride: form.DefaultOperSize,
		operSize64:       form.DefaultOperSize64,
		sink:             sink,
		loc:              loc,
		ok:               true,
	}
}

func (c *ctx) fail() { c.ok = false }

// setRexBit ORs one REX extension bit into the accumulator, promoting it
// to a full REX byte (with the 0x40 base) the first time any bit is set.
func (c *ctx) setRexBit(bit byte) {
	if c.rex == prefix.RexPoison {
		c.sink.Error(diag.CodeHigh8RexConflict, c.loc, "AH/BH/CH/DH cannot be used with a REX prefix")
		c.fail()
		return
	}
	if bit == 0 {
		return
	}
	if c.rex == 0 {
		c.rex = prefix.ValueREXBase
	}
	c.rex |= bit
}

// poisonRex marks REX as forbidden for the remainder of this instruction
// (an AH/BH/CH/DH operand was used).
func (c *ctx) poisonRex() {
	if c.rex != 0 && c.rex != prefix.RexPoison {
		c.sink.Error(diag.CodeHigh8RexConflict, c.loc, "AH/BH/CH/DH cannot be used with a REX prefix")
		c.fail()
		return
	}
	c.rex = prefix.RexPoison
}

// vexFields assembles the vex.Fields this instruction's VEX/XOP prefix
// transform needs, from the form's static WLpp recipe plus the REX/vvvv
// bits operand actions accumulated.
func (c *ctx) vexFields() vex.Fields {
	return vex.Fields{
		Kind:  c.vexInfo.Kind,
		W:     c.vexInfo.W,
		L256:  c.vexInfo.L256,
		PP:    c.vexInfo.PP,
		MMMMM: c.vexInfo.MMMMM,
		RexR:  c.vexRexR,
		RexX:  c.vexRexX,
		RexB:  c.vexRexB,
		Vvvv:  c.vvvv,
	}
}
