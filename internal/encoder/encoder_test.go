package encoder

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keurnel/x86enc/internal/bytecode"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/ea"
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/table"
	"github.com/keurnel/x86enc/internal/encoder/value"
	"github.com/keurnel/x86enc/internal/resolver"
)

// assemble drives exactly the pipeline spec.md §5's driver loop runs: match
// + encode each instruction into a fresh Container, then resolve spans and
// serialise. It fails the test on any diagnostic error.
func assemble(t *testing.T, ins ...*insn.Insn) []byte {
	t.Helper()
	sink := diag.NewSink("test.asm")
	cont := bytecode.New()
	for _, in := range ins {
		if !Encode(in, cont, sink) {
			t.Fatalf("Encode failed: %v", sink.Errors())
		}
	}
	resolver.Resolve(cont)
	return cont.Output()
}

func mustForm(t *testing.T, mnemonic string) []table.InsnForm {
	t.Helper()
	g, ok := table.Lookup(mnemonic)
	if !ok {
		t.Fatalf("no table entry for %s", mnemonic)
	}
	return g.Forms
}

func regOperand(r reg.Register) operand.Operand {
	return operand.Operand{Kind: operand.KindReg, Reg: r, ExplicitSizeBits: r.Size()}
}

func immOperand(v int64) operand.Operand {
	return operand.Operand{Kind: operand.KindImm, Imm: value.KnownInt(v)}
}

func memOperand(e ea.Expr) operand.Operand {
	return operand.Operand{Kind: operand.KindMem, Mem: e, Deref: true}
}

func assertBytes(t *testing.T, got []byte, want ...byte) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("byte sequence mismatch (-want +got):\n%s", diff)
	}
}

// mov eax, 1 -> B8 01 00 00 00 (spec.md §8 scenario 1)
func TestScenario_MovEaxImm32(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "MOV",
		Forms:    mustForm(t, "MOV"),
		ModeBits: 64,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{regOperand(reg.EAX), immOperand(1)},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0xB8, 0x01, 0x00, 0x00, 0x00)
}

// mov rax, 1 -> 48 C7 C0 01 00 00 00 (spec.md §8 scenario 2: the
// narrower r/m64,imm32(sext) form wins over r64,imm64).
func TestScenario_MovRaxImm32Sext(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "MOV",
		Forms:    mustForm(t, "MOV"),
		ModeBits: 64,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{regOperand(reg.RAX), immOperand(1)},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0x48, 0xC7, 0xC0, 0x01, 0x00, 0x00, 0x00)
}

// mov [rip+0], rax -> 48 89 05 F9 FF FF FF (spec.md §8 scenario 3): the
// RIP-relative displacement is position-dependent, not the literal 0 the
// user wrote, since it is always relative to the end of this instruction.
func TestScenario_MovRipRelative(t *testing.T) {
	mem := ea.Expr{Disp: value.KnownInt(0), HasDisp: true, DispRelative: true, WRT: "rip"}
	in := &insn.Insn{
		Mnemonic: "MOV",
		Forms:    mustForm(t, "MOV"),
		ModeBits: 64,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{memOperand(mem), regOperand(reg.RAX)},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0x48, 0x89, 0x05, 0xF9, 0xFF, 0xFF, 0xFF)
}

// jmp short $+2 -> EB 00 (spec.md §8 scenario 4): target is the address
// right after this (2-byte) instruction, i.e. zero displacement.
func TestScenario_JmpShort(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "JMP",
		Forms:    mustForm(t, "JMP"),
		ModeBits: 64,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{{Kind: operand.KindImm, Imm: value.KnownInt(2), TargetMod: reg.TargetModShort}},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0xEB, 0x00)
}

// jmp $+130 -> E9 7D 00 00 00 (spec.md §8 scenario 5): the unmodified
// target starts as a SHORT guess, then grows to NEAR once the resolver
// sees the real displacement (128) escape the 8-bit signed threshold.
func TestScenario_JmpUpgradesShortToNear(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "JMP",
		Forms:    mustForm(t, "JMP"),
		ModeBits: 64,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{{Kind: operand.KindImm, Imm: value.KnownInt(130)}},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0xE9, 0x7D, 0x00, 0x00, 0x00)
}

// add rax, [rsp+8] -> 48 03 44 24 08 (spec.md §8 scenario 6): RSP as a
// base forces a SIB byte regardless of indexing.
func TestScenario_AddRegMem(t *testing.T) {
	mem := ea.Expr{
		Terms:   []ea.Term{{Reg: reg.RSP, Mult: 1}},
		Disp:    value.KnownInt(8),
		HasDisp: true,
	}
	in := &insn.Insn{
		Mnemonic: "ADD",
		Forms:    mustForm(t, "ADD"),
		ModeBits: 64,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{regOperand(reg.RAX), memOperand(mem)},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0x48, 0x03, 0x44, 0x24, 0x08)
}

// mov [bx+si+4], ax -> 89 40 04 in 16-bit mode (spec.md §8 scenario 7):
// legacy 16-bit ModR/M addressing, no REX or operand-size prefix needed
// since the operand size already matches the mode default.
func TestScenario_Mov16BitAddressing(t *testing.T) {
	mem := ea.Expr{
		Terms:   []ea.Term{{Reg: reg.BX, Mult: 1}, {Reg: reg.SI, Mult: 1}},
		Disp:    value.KnownInt(4),
		HasDisp: true,
	}
	in := &insn.Insn{
		Mnemonic: "MOV",
		Forms:    mustForm(t, "MOV"),
		ModeBits: 16,
		CPUMask:  cpu.Modern386_64,
		Operands: []operand.Operand{memOperand(mem), regOperand(reg.AX)},
		Loc:      diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0x89, 0x40, 0x04)
}

// vaddps ymm1, ymm2, ymm3 -> C5 EC 58 CB (spec.md §8 scenario 8): the
// 2-byte VEX prefix shortening rule applies since no REX.X/B/W or a
// leading-byte escape beyond 0x0F is needed.
func TestScenario_VEXShortened(t *testing.T) {
	in := &insn.Insn{
		Mnemonic:  "VADDPS",
		Forms:     table.VADDPS.Forms,
		ModeBits:  64,
		AVXTagged: true,
		Operands: []operand.Operand{
			regOperand(reg.YMM[1]),
			regOperand(reg.YMM[2]),
			regOperand(reg.YMM[3]),
		},
		CPUMask:   cpu.Modern386_64,
		Loc:     diag.Loc("test.asm", 1, 1),
	}
	assertBytes(t, assemble(t, in), 0xC5, 0xEC, 0x58, 0xCB)
}
