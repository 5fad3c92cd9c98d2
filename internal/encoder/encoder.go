// Package encoder ties the matcher, the general encoder, and the jump
// encoder together into the single entry point spec.md §5's driver loop
// calls once per parsed instruction.
package encoder

import (
	"fmt"

	"github.com/keurnel/x86enc/internal/bytecode"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/common"
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/jump"
	"github.com/keurnel/x86enc/internal/encoder/match"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/table"
	"github.com/keurnel/x86enc/internal/encoder/value"
	"github.com/keurnel/x86enc/internal/encoder/vex"
)

// Encode matches in against its mnemonic's form table (spec.md §4.4) and
// appends the resulting bytecode to cont, routing to the jump encoder
// (§4.6) or the general encoder (§4.5) depending on which the winning
// form calls for. It returns false, with a diagnostic recorded on sink,
// when no form matches or the chosen form turns out illegal for these
// operands once fully applied (e.g. an AH operand combined with a REX
// prefix).
func Encode(in *insn.Insn, cont *bytecode.Container, sink *diag.Sink) bool {
	res, blame, ok := match.Match(in)
	if !ok {
		sink.Error(diag.CodeBadInsnOperands, in.Loc,
			fmt.Sprintf("%s: no form matches these operands (operand %d)", in.Mnemonic, blame.OperandIndex+1))
		return false
	}

	form := res.Form
	if isJumpForm(form) {
		return encodeJump(in, form, res.Reversed, cont, sink)
	}
	return encodeGeneral(in, form, res.Reversed, cont, sink)
}

func isJumpForm(form table.InsnForm) bool {
	for _, p := range form.Operands {
		if p.Action == table.ActionJmpRel || p.Action == table.ActionJmpFar {
			return true
		}
	}
	return false
}

// warnSegOverride implements spec.md §4.5 step 4's "warn CS/DS/ES/SS in
// 64-bit mode" rule: those four overrides are accepted (and encoded) but
// silently ignored by the processor in long mode, so flag them; FS/GS
// remain meaningful in 64-bit mode and need no warning.
func warnSegOverride(in *insn.Insn, sink *diag.Sink) {
	if in.SegOverride == nil || in.ModeBits != 64 {
		return
	}
	switch in.SegOverride.Prefix {
	case reg.ES.Prefix, reg.CS.Prefix, reg.SS.Prefix, reg.DS.Prefix:
		sink.Warn(diag.CodeSegIgnoredInXXMode, in.SegOverrideLoc,
			fmt.Sprintf("%s segment override is ignored in 64-bit mode", in.SegOverride.Name))
	}
}

// foldPrefixes runs spec.md §4.5 steps 2/6: preset REX.W per the
// DOpS64R-style operand-size override already accumulated, fold the
// parsed legacy prefix list into a common.State, and return the
// serialised legacy-prefix bytes plus the final REX byte (0 if none,
// prefix.RexPoison if one is forbidden).
func foldPrefixes(in *insn.Insn, operSizeOverride, forceAddrSize int, rexIn byte, sink *diag.Sink, loc diag.Location, defaultOper64 int) ([]byte, byte, bool) {
	state := common.New(in.ModeBits)
	if operSizeOverride == 64 {
		state.OperSize = 64
	}
	if forceAddrSize != 0 {
		state.AddrSize = forceAddrSize
	}
	rex := rexIn
	if !state.ApplyPrefixes(in.Mnemonic, defaultOper64, in.Prefixes, sink, loc, &rex) {
		return nil, 0, false
	}
	state.Finish()
	return state.WritePrefixBytes(nil), rex, true
}

// encodeGeneral implements spec.md §4.5 in full: modifiers, per-operand
// actions, post-actions, segment/prefix folding, the VEX/XOP transform,
// and emission as either a fixed byte sequence or a GeneralItem.
func encodeGeneral(in *insn.Insn, form table.InsnForm, reversed bool, cont *bytecode.Container, sink *diag.Sink) bool {
	c := newCtx(in, form, sink, in.Loc)

	applyModifiers(c)

	ops, pats := operandsInOrder(in, form, reversed)
	for i := range ops {
		applyOperand(c, ops[i], pats[i])
		if !c.ok {
			return false
		}
	}

	applyPostActions(c)
	if !c.ok {
		return false
	}

	warnSegOverride(in, sink)

	legacy, rex, ok := foldPrefixes(in, c.operSizeOverride, c.forceAddrSize, c.rex, sink, in.Loc, form.DefaultOperSize64)
	if !ok {
		return false
	}

	var prefixBytes []byte
	prefixBytes = append(prefixBytes, legacy...)

	var vexBytes []byte
	var opBytes []byte
	if c.useVEX {
		vexBytes = vex.Build(c.vexFields(), &c.op)
		opBytes = []byte{c.op.Bytes[c.op.Len-1]}
	} else {
		if rex != 0 && rex != prefix.RexPoison {
			prefixBytes = append(prefixBytes, rex)
		}
		opBytes = append(opBytes, c.op.Bytes[:c.op.Len]...)
	}

	gi := &GeneralItem{
		Prefixes:     prefixBytes,
		VEX:          vexBytes,
		Opcode:       opBytes,
		HasModRM:     c.hasModRM,
		ModRM:        c.finalModRM(),
		HasSIB:       c.hasSIB,
		SIB:          c.sib,
		HasDisp:      c.hasDisp,
		Disp:         c.disp,
		DispMod:      c.dispMod,
		AddrWordBits: addrWordBits(c.eaAddrSize),
		IsMoffs:      c.isMoffs,
		MoffsVal:     c.moffsVal,
		Imms:         c.imms,
	}

	relocs := gi.relocations()
	needsSpan := (gi.HasDisp && gi.DispMod == 1 && !gi.Disp.Expr.Known) || (gi.HasDisp && gi.Disp.Relative)
	if needsSpan {
		// A RIP-relative displacement is position-dependent even when it
		// never grows (CalcLen registers no span for it): AppendSpan is
		// what gets Finalize called with this item's real offset/length
		// before Output runs, exactly as a zero-growth RelJump still needs
		// Finalize for its own relative target.
		cont.AppendSpan(gi, relocs...)
	} else {
		cont.AppendFixed(gi.Output(nil), relocs...)
	}
	return true
}

func addrWordBits(eaAddrSize int) int {
	if eaAddrSize == 16 {
		return 16
	}
	return 32
}

// encodeJump implements spec.md §4.6: relative jumps are built from the
// SHORT/NEAR sibling opcode pair found anywhere in the mnemonic's own
// form table (not necessarily the one form match.Match happened to pick,
// since both siblings share the same operand shape); far jumps are a
// fixed-length sequence.
func encodeJump(in *insn.Insn, form table.InsnForm, reversed bool, cont *bytecode.Container, sink *diag.Sink) bool {
	ops, pats := operandsInOrder(in, form, reversed)
	var target operand.Operand
	var pat table.OperandPattern
	for i, p := range pats {
		if p.Action == table.ActionJmpRel || p.Action == table.ActionJmpFar {
			target = ops[i]
			pat = p
			break
		}
	}

	warnSegOverride(in, sink)

	legacy, rex, ok := foldPrefixes(in, 0, 0, 0, sink, in.Loc, form.DefaultOperSize64)
	if !ok {
		return false
	}
	var prefixBytes []byte
	prefixBytes = append(prefixBytes, legacy...)
	if rex != 0 && rex != prefix.RexPoison {
		prefixBytes = append(prefixBytes, rex)
	}

	if pat.Action == table.ActionJmpFar {
		return encodeFarJump(target, form, prefixBytes, cont)
	}
	return encodeRelJump(in, target, prefixBytes, cont, sink)
}

func encodeFarJump(target operand.Operand, form table.InsnForm, prefixBytes []byte, cont *bytecode.Container) bool {
	var seg uint16
	if target.SegmentOf != nil && target.SegmentOf.Known {
		seg = uint16(target.SegmentOf.Integer)
	}
	fj := jump.FarJump{
		Prefixes:   prefixBytes,
		Opcode:     form.Opcode,
		OperSize16: false,
		Segment:    seg,
	}
	var relocs []bytecode.Relocation
	if target.Imm.Known {
		fj.Offset = target.Imm.Integer
	} else {
		off := len(prefixBytes) + len(form.Opcode)
		relocs = append(relocs, bytecode.Relocation{
			Value:  value.Value{Expr: target.Imm, SizeBits: 32, SourceLocation: target.SourceLocation.String()},
			Offset: off,
		})
	}
	cont.AppendFixed(fj.Bytes(), relocs...)
	return true
}

func encodeRelJump(in *insn.Insn, target operand.Operand, prefixBytes []byte, cont *bytecode.Container, sink *diag.Sink) bool {
	shortOp, nearOp, operSize16 := siblingOpcodes(in)
	targetVal := value.Value{Expr: target.Imm, SizeBits: 32, Relative: true, JumpTarget: true, SourceLocation: in.Loc.String()}
	rj, ok := jump.New(shortOp, nearOp, operSize16, targetVal, target.TargetMod, sink, in.Loc)
	if !ok {
		return false
	}
	rj.Prefixes = prefixBytes
	var relocs []bytecode.Relocation
	if !target.Imm.Known {
		relocs = append(relocs, bytecode.Relocation{Value: targetVal, Offset: len(prefixBytes) + len(nearOpOrShort(rj, shortOp, nearOp))})
	}
	cont.AppendSpan(rj, relocs...)
	return true
}

func nearOpOrShort(rj *jump.RelJump, shortOp, nearOp []byte) []byte {
	if rj.Mode == jump.ModeShort {
		return shortOp
	}
	return nearOp
}

// siblingOpcodes scans every form of in's mnemonic for the SHORT and NEAR
// relative-jump opcodes (spec.md §4.6): a mnemonic may define either,
// both, or (for a GAS-style 16-bit near jump) a 16-bit near displacement.
func siblingOpcodes(in *insn.Insn) (shortOp, nearOp []byte, operSize16 bool) {
	for _, f := range in.Forms {
		for _, p := range f.Operands {
			if p.Action != table.ActionJmpRel {
				continue
			}
			switch p.TargetMod {
			case reg.TargetModShort:
				shortOp = f.Opcode
			case reg.TargetModNear:
				nearOp = f.Opcode
				operSize16 = p.Size == 16
			}
		}
	}
	return
}
