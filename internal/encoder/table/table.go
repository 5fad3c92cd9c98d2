package table

import "strings"

// registry maps a mnemonic to its Group, built once at init from the
// per-category var blocks in this package. Grounded on
// v0/architecture/instruction_group.go's InstructionGroup.FromSlice, which
// builds an identical mnemonic->Instruction map from a slice of
// instructions; the teacher's version additionally wraps the map in a
// pointer-receiver type with Has/Get/Put/Remove, but this table is
// immutable after init, so those mutators have no SPEC_FULL use and are
// not carried over.
var registry map[string]Group

func init() {
	groups := []Group{
		MOV, MOVZX, MOVSX, LEA, PUSH, POP, XCHG,
		ADD, OR, ADC, SBB, AND, SUB, XOR, CMP,
		INC, DEC, NOT, NEG, MUL, IMUL, DIV, IDIV,
		TEST,
		ROL, ROR, RCL, RCR, SHL, SHR, SAL, SAR,
		JMP, JO, JNO, JB, JAE, JE, JNE, JBE, JA, JS, JNS, JP, JNP, JL, JGE, JLE, JG,
		CALL, RET, SYSCALL, SYSRET, INT3, INT, INTO, IRET,
		NOP, HLT, CPUID, RDTSC,
		VADDPS, VXORPS, VMOVAPS,
	}
	registry = make(map[string]Group, len(groups))
	for _, g := range groups {
		registry[g.Mnemonic] = g
	}
}

// Lookup returns the Group for mnemonic (case-insensitive, per spec.md
// §4.8) and whether it was found.
func Lookup(mnemonic string) (Group, bool) {
	g, ok := registry[strings.ToUpper(mnemonic)]
	return g, ok
}

// All returns every registered mnemonic, sorted is the caller's concern —
// this is consumed directly by the `x86_64 table` CLI subcommand
// (cmd/keurnel-asm) which sorts for display.
func All() []Group {
	out := make([]Group, 0, len(registry))
	for _, g := range registry {
		out = append(out, g)
	}
	return out
}
