package encoder

import (
	"github.com/keurnel/x86enc/internal/encoder/ea"
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/table"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// applyModifiers runs spec.md §4.5 step 1: each of the form's three
// modifier slots mutates the opcode buffer, the spare digit, the
// operand-size override, or the REX accumulator, depending on its kind.
//
// Only DOpS64R and Imm8 are exercised by the current instruction tables;
// the rest are implemented from the spec prose directly (no table row
// grounds them yet) and are documented as such in DESIGN.md.
func applyModifiers(c *ctx) {
	for _, m := range c.form.Modifiers {
		switch m.Kind {
		case table.ModNone:
			// empty slot

		case table.ModPreAdd:
			c.op.Add(0, m.Value)

		case table.ModOp0Add:
			c.op.Add(0, m.Value)

		case table.ModOp1Add:
			c.op.Add(1, m.Value)

		case table.ModOp2Add:
			c.op.Add(2, m.Value)

		case table.ModSpAdd:
			if c.spareDigit == table.NoSpareDigit {
				c.spareDigit = 0
			}
			c.spareDigit += int(m.Value)

		case table.ModOpSizeR:
			// Operand size taken from a register operand's own width
			// rather than the form's static default; the register
			// action handler honours this by leaving operSizeOverride
			// at 0 so common.State falls through to the mode default,
			// which already matches a register operand's natural size
			// for every GPR form in this table.

		case table.ModImm8:
			c.altByte = m.Value
			c.haveAlt = true

		case table.ModAdSizeR:
			// Address size taken from a register operand (memrAX/memEAX
			// implicit forms); handled at the AdSizeEA action site.

		case table.ModDOpS64R:
			if m.Value != 0 && c.in.ModeBits == 64 {
				c.operSizeOverride = 64
			}

		case table.ModOp1AddSp:
			c.op.Add(1, m.Value)

		case table.ModSetVEX:
			c.useVEX = true

		case table.ModGap:
			// reserved; no effect
		}
	}
}

// operandsInOrder returns this instruction's operands and the form's
// patterns in the order the general encoder must walk them, applying
// spec.md §4.4's GAS operand-reversal view when it was used to match.
func operandsInOrder(in *insn.Insn, form table.InsnForm, reversed bool) ([]operand.Operand, []table.OperandPattern) {
	if !reversed {
		return in.Operands, form.Operands
	}
	ops := make([]operand.Operand, len(in.Operands))
	for i, o := range in.Operands {
		ops[len(ops)-1-i] = o
	}
	pats := make([]table.OperandPattern, len(form.Operands))
	for i, p := range form.Operands {
		pats[len(pats)-1-i] = p
	}
	return ops, pats
}

// applyOperand runs spec.md §4.5 step 3 for one matched (operand,
// pattern) pair.
func applyOperand(c *ctx, op operand.Operand, pat table.OperandPattern) {
	switch pat.Action {
	case table.ActionNone:
		// discard: implicit operands (AL, CS, DX, "1") contribute nothing

	case table.ActionEA:
		applyEA(c, op, pat)

	case table.ActionEAVEX:
		applyEAVEX(c, op, pat)

	case table.ActionImm:
		c.imms = append(c.imms, immField{val: immValue(op, pat), sizeBits: immSize(op, pat), signed: false, post: pat.Post})

	case table.ActionSImm:
		c.imms = append(c.imms, immField{val: immValue(op, pat), sizeBits: immSize(op, pat), signed: true, post: pat.Post})

	case table.ActionSpare:
		setSpareFromReg(c, op.Reg)

	case table.ActionSpareVEX:
		// ModR/M.reg destination of a VEX triad; this does not also
		// write VEX.vvvv (that would corrupt the
		// non-destructive dest/src1/src2 shape every AVX form in this
		// table actually uses).
		c.spareDigit = int(op.Reg.LowBits())
		c.spareSet = true
		c.vexRexR = op.Reg.ExtBit()

	case table.ActionOp0Add:
		c.op.Add(0, op.Reg.LowBits())
		c.setRexBit(op.Reg.ExtBit())

	case table.ActionOp1Add:
		c.op.Add(1, op.Reg.LowBits())
		c.setRexBit(op.Reg.ExtBit())

	case table.ActionSpareEA:
		// imul-like: one operand supplies both ModR/M.reg and ModR/M.rm.
		// No table row exercises this (the built IMUL forms instead use
		// two separate Spare+EA operands for the same effect); kept for
		// spec completeness.
		setSpareFromReg(c, op.Reg)
		applyEA(c, op, pat)

	case table.ActionAdSizeEA:
		// memrAX/memEAX forms: only the address size is taken from the
		// register, no byte is emitted for this operand. Unexercised by
		// the current table.
		if op.Kind == operand.KindReg {
			c.forceAddrSize = op.Reg.Size()
		}

	case table.ActionVEX:
		c.vvvv = op.Reg.Number & 0xF

	case table.ActionVEXImmSrc:
		// Upper 4 bits of an 8-bit immediate source a VEX.is4 register
		// selector; unexercised by the current table (no VEX.is4 form is
		// built yet). Recorded as a plain immediate so it still emits.
		c.imms = append(c.imms, immField{val: immValue(op, pat), sizeBits: 8, signed: false})

	case table.ActionVEXImm:
		c.imms = append(c.imms, immField{val: immValue(op, pat), sizeBits: 8, signed: false})

	case table.ActionJmpRel, table.ActionJmpFar, table.ActionAdSizeR:
		// routed to the jump encoder before applyOperand is ever called
		// for these forms; see Encode.
	}
}

func setSpareFromReg(c *ctx, r reg.Register) {
	c.spareDigit = int(r.LowBits())
	c.spareSet = true
	c.setRexBit(r.ExtBit() << 2)
	if r.PoisonsREX() {
		c.poisonRex()
	}
}

func immValue(op operand.Operand, pat table.OperandPattern) value.Value {
	return value.Value{
		Expr:           op.Imm,
		SizeBits:       immSize(op, pat),
		Signed:         pat.Action == table.ActionSImm,
		SourceLocation: op.SourceLocation.String(),
	}
}

func immSize(op operand.Operand, pat table.OperandPattern) int {
	if op.ExplicitSizeBits != 0 {
		return op.ExplicitSizeBits
	}
	return pat.Size
}

// applyEA builds the ModR/M (and SIB/disp) encoding for a register-or-
// memory operand, or the flat moffs displacement for a MemOffs operand.
func applyEA(c *ctx, op operand.Operand, pat table.OperandPattern) {
	if pat.Type == table.OpMemOffs {
		applyMoffs(c, op)
		return
	}
	switch op.Kind {
	case operand.KindReg:
		c.hasModRM = true
		c.modRM |= 0xC0 | op.Reg.LowBits()
		c.setRexBit(op.Reg.ExtBit())
		if op.Reg.PoisonsREX() {
			c.poisonRex()
		}
	case operand.KindMem:
		applyMemEA(c, op, ea.VSIBNone)
	case operand.KindSegReg:
		// segment-register-as-EA (PUSH/POP FS/GS use ActionNone instead,
		// but keep this branch for completeness): encode as a bare reg
		// field value with no ModR/M, nothing further to do.
	}
}

func applyEAVEX(c *ctx, op operand.Operand, pat table.OperandPattern) {
	switch op.Kind {
	case operand.KindReg:
		c.hasModRM = true
		c.modRM |= 0xC0 | op.Reg.LowBits()
		c.vexRexB = op.Reg.ExtBit()
	case operand.KindMem:
		vsib := ea.VSIBNone
		if pat.Type == table.OpMemXMMIndex {
			vsib = ea.VSIBXMM
		} else if pat.Type == table.OpMemYMMIndex {
			vsib = ea.VSIBYMM
		}
		applyMemEA(c, op, vsib)
		c.vexRexX = c.lastMemRexX
		c.vexRexB = c.lastMemRexB
	}
}

func applyMemEA(c *ctx, op operand.Operand, vsib ea.VSIBKind) {
	opts := ea.Options{
		ModeBits:       c.in.ModeBits,
		VSIB:           vsib,
		DefaultRel:     c.in.DefaultRel,
		HasSegOverride: c.in.SegOverride != nil,
	}
	res, ok := ea.Analyse(op.Mem, opts, c.sink, c.loc)
	if !ok {
		c.fail()
		return
	}
	c.hasModRM = true
	c.modRM |= res.ModRM
	c.hasSIB = res.HasSIB
	c.sib = res.SIB
	if res.HasDisp {
		c.hasDisp = true
		c.disp = res.Disp
		c.dispSizeBits = res.Disp.SizeBits
		c.dispMod = res.DispMod
	}
	c.setRexBit(res.RexX << 1)
	c.setRexBit(res.RexB)
	c.lastMemRexX = res.RexX
	c.lastMemRexB = res.RexB
	c.eaAddrSize = res.AddrSize
}

func applyMoffs(c *ctx, op operand.Operand) {
	c.isMoffs = true
	disp := op.Mem.Disp
	c.moffsVal = value.Value{Expr: disp, SizeBits: addrSizeBits(c.in.ModeBits), SourceLocation: c.loc.String()}
}

func addrSizeBits(modeBits int) int {
	if modeBits == 64 {
		return 64
	}
	return modeBits
}

// applyPostActions runs spec.md §4.5 step 5 over every recorded immediate.
func applyPostActions(c *ctx) {
	for i := range c.imms {
		switch c.imms[i].post {
		case table.PostSImm8:
			applySImm8(c, i)
		case table.PostA16:
			c.forceAddrSize = 16
		case table.PostShortMov, table.PostSImm32Avail, table.PostNone:
			// ShortMov: already realised via the MemOffs EA path.
			// SImm32Avail: the matcher's narrowest-fit rule (immFits)
			// already prefers the compact form at match time whenever
			// the value allows it, so no further post-hoc narrowing of
			// this already-widest-remaining form is needed.
		}
	}
}

// applySImm8 decides, for a form carrying a ModImm8 alternate opcode,
// whether the recorded immediate's actual value fits a sign-extended 8
// bits: if so, switch to the short alt opcode and shrink the immediate;
// otherwise keep the form's primary (wide) opcode and immediate size.
// An unresolved (symbolic) immediate conservatively keeps the wide form,
// since nothing downstream re-drives this decision once the symbol
// resolves (this encoder has no symbol-resolution pass of its own).
func applySImm8(c *ctx, idx int) {
	if !c.haveAlt {
		return
	}
	v := c.imms[idx].val
	if !v.Expr.Known {
		return
	}
	if v.Expr.Integer < -128 || v.Expr.Integer > 127 {
		return
	}
	c.op.Bytes[c.op.Len] = c.altByte
	c.op.MakeAlt1()
	c.imms[idx].sizeBits = 8
	c.imms[idx].signed = true
}

// finalModRM returns the completed ModR/M byte (EA bits already applied,
// spare digit folded into bits 3-5).
func (c *ctx) finalModRM() byte {
	digit := c.spareDigit
	if digit == table.NoSpareDigit || digit < 0 {
		digit = 0
	}
	return (c.modRM &^ 0x38) | (byte(digit&0x7) << 3)
}
