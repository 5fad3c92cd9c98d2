package table

import (
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/vex"
)

// Representative AVX slice (VADDPS, VMOVAPS, VXORPS in VEX.128/256 forms),
// per SPEC_FULL's committed coverage list. No teacher file models VEX —
// architecture/x86_64/instruction_encoding.go only names EncodingVEX as an
// unused enum value — so these forms are built fresh from spec.md §4.7's
// WLpp byte layout and opcode-map prose (0x0F escape -> mmmmm=1), using
// the same three-operand (dest, src1, src2) shape AVX non-destructive
// arithmetic always takes: dest and src2 in ModR/M, src1 in VEX.vvvv.
var avxCPU = [3]cpu.Feature{cpu.FeatureAVX, cpu.FeatureNone, cpu.FeatureNone}

func vaddLikeGroup(mnemonic string, opcodeByte byte) Group {
	return Group{Mnemonic: mnemonic, Forms: []InsnForm{
		// VEX.128: dest, src1 (vvvv), src2 (modrm.rm)
		{CPU: avxCPU, SpecialPrefix: 0xC4,
			VEX:        VEXInfo{Kind: vex.KindVEX, W: false, L256: false, PP: vex.PPNone, MMMMM: 1},
			Opcode:     []byte{0x0F, opcodeByte},
			SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{
				simdRegOp(128, ActionSpareVEX),
				simdRegOp(128, ActionVEX),
				simdRMOp(128, ActionEAVEX),
			}},
		// VEX.256
		{CPU: avxCPU, SpecialPrefix: 0xC4,
			VEX:        VEXInfo{Kind: vex.KindVEX, W: false, L256: true, PP: vex.PPNone, MMMMM: 1},
			Opcode:     []byte{0x0F, opcodeByte},
			SpareDigit: NoSpareDigit,
			Operands: []OperandPattern{
				simdRegOp(256, ActionSpareVEX),
				simdRegOp(256, ActionVEX),
				simdRMOp(256, ActionEAVEX),
			}},
	}}
}

var VADDPS = vaddLikeGroup("VADDPS", 0x58)
var VXORPS = vaddLikeGroup("VXORPS", 0x57)

// VMOVAPS is a two-operand move, not an arithmetic non-destructive triad,
// and additionally has a reversed store form (xmm/mem <- xmm), so it gets
// its own table rather than riding vaddLikeGroup.
var VMOVAPS = Group{Mnemonic: "VMOVAPS", Forms: []InsnForm{
	// VEX.128 load: xmm1 <- xmm2/m128
	{CPU: avxCPU, SpecialPrefix: 0xC4,
		VEX:        VEXInfo{Kind: vex.KindVEX, W: false, L256: false, PP: vex.PPNone, MMMMM: 1},
		Opcode:     []byte{0x0F, 0x28},
		SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{
			simdRegOp(128, ActionSpareVEX),
			simdRMOp(128, ActionEAVEX),
		}},
	// VEX.256 load
	{CPU: avxCPU, SpecialPrefix: 0xC4,
		VEX:        VEXInfo{Kind: vex.KindVEX, W: false, L256: true, PP: vex.PPNone, MMMMM: 1},
		Opcode:     []byte{0x0F, 0x28},
		SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{
			simdRegOp(256, ActionSpareVEX),
			simdRMOp(256, ActionEAVEX),
		}},
	// VEX.128 store: xmm2/m128 <- xmm1
	{CPU: avxCPU, SpecialPrefix: 0xC4,
		VEX:        VEXInfo{Kind: vex.KindVEX, W: false, L256: false, PP: vex.PPNone, MMMMM: 1},
		Opcode:     []byte{0x0F, 0x29},
		SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{
			simdRMOp(128, ActionEAVEX),
			simdRegOp(128, ActionSpareVEX),
		}},
	// VEX.256 store
	{CPU: avxCPU, SpecialPrefix: 0xC4,
		VEX:        VEXInfo{Kind: vex.KindVEX, W: false, L256: true, PP: vex.PPNone, MMMMM: 1},
		Opcode:     []byte{0x0F, 0x29},
		SpareDigit: NoSpareDigit,
		Operands: []OperandPattern{
			simdRMOp(256, ActionEAVEX),
			simdRegOp(256, ActionSpareVEX),
		}},
}}
