package match

import (
	"testing"

	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/table"
)

func TestMatch_PicksADD_R64R64Form(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "ADD",
		Forms:    table.ADD.Forms,
		CPUMask:  cpu.Modern386_64,
		ModeBits: 64,
		Operands: []operand.Operand{
			operand.RegOperand(reg.RAX),
			operand.RegOperand(reg.RCX),
		},
	}
	res, _, ok := Match(in)
	if !ok {
		t.Fatal("expected a match")
	}
	if len(res.Form.Opcode) != 1 || res.Form.Opcode[0] != 0x01 {
		t.Errorf("got opcode %v, want [0x01]", res.Form.Opcode)
	}
	if res.Form.Modifiers[0].Kind != table.ModDOpS64R {
		t.Error("expected the r64,r64 form (REX.W modifier) to win")
	}
}

func TestMatch_OperandCountMismatch(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "RET",
		Forms:    table.RET.Forms,
		CPUMask:  cpu.Modern386_64,
		ModeBits: 64,
		Operands: []operand.Operand{operand.RegOperand(reg.RAX)},
	}
	if _, _, ok := Match(in); ok {
		t.Error("expected no RET form to accept a register operand")
	}
}

func TestMatch_Only64Gate(t *testing.T) {
	in := &insn.Insn{
		Mnemonic: "SYSCALL",
		Forms:    table.SYSCALL.Forms,
		CPUMask:  cpu.Modern386_64,
		ModeBits: 32,
	}
	if _, _, ok := Match(in); ok {
		t.Error("expected SYSCALL to be rejected outside 64-bit mode")
	}
}
