// Package lookup implements the case-insensitive, dialect-aware
// mnemonic/prefix/register/target-modifier lookup of spec.md §4.8: given
// an identifier in any case, return one of an instruction group, a prefix,
// a register, a target modifier, or not-found.
//
// Grounded on architecture/x86_64/registers.go, whose Register carries a
// `Name string` next to its encoding — the same name->value association
// this package builds into a lookup table, generalised from "named
// constant" to "hash map keyed by the lowercased name" and extended to
// registers, prefixes, and target modifiers together. Both dialects share
// one set of tables; Lookup strips GAS's '%' register prefix and mnemonic
// size suffix before consulting them.
package lookup

import (
	"strings"

	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/table"
)

// Dialect selects how Lookup normalises a name before consulting the
// shared tables: DialectGAS strips the '%' register prefix and the
// mnemonic size suffix, DialectNASM uses the name as written.
type Dialect int

const (
	DialectNASM Dialect = iota
	DialectGAS
)

// Kind discriminates what a successful Lookup found.
type Kind int

const (
	KindNone Kind = iota
	KindGroup
	KindRegister
	KindSegment
	KindTargetModifier
	KindPrefix
)

// Result is the outcome of a Lookup call.
type Result struct {
	Kind     Kind
	Group    table.Group
	Register reg.Register
	Segment  reg.Segment
	Modifier reg.TargetModifier
	Prefix   prefix.Prefix
}

// registerNames maps a register's canonical NASM-syntax name to its value.
// GAS spells every register with a leading '%', which Lookup strips
// before consulting this table, so one name table
// serves both dialects; only mnemonics and a handful of directives
// actually diverge by dialect at this layer.
var registerNames = buildRegisterNames()

func buildRegisterNames() map[string]reg.Register {
	m := map[string]reg.Register{
		"rax": reg.RAX, "rcx": reg.RCX, "rdx": reg.RDX, "rbx": reg.RBX,
		"rsp": reg.RSP, "rbp": reg.RBP, "rsi": reg.RSI, "rdi": reg.RDI,
		"r8": reg.R8, "r9": reg.R9, "r10": reg.R10, "r11": reg.R11,
		"r12": reg.R12, "r13": reg.R13, "r14": reg.R14, "r15": reg.R15,
		"eax": reg.EAX, "ecx": reg.ECX, "edx": reg.EDX, "ebx": reg.EBX,
		"esp": reg.ESP, "ebp": reg.EBP, "esi": reg.ESI, "edi": reg.EDI,
		"r8d": reg.R8D, "r9d": reg.R9D, "r10d": reg.R10D, "r11d": reg.R11D,
		"r12d": reg.R12D, "r13d": reg.R13D, "r14d": reg.R14D, "r15d": reg.R15D,
		"ax": reg.AX, "cx": reg.CX, "dx": reg.DX, "bx": reg.BX,
		"sp": reg.SP, "bp": reg.BP, "si": reg.SI, "di": reg.DI,
		"al": reg.AL, "cl": reg.CL, "dl": reg.DL, "bl": reg.BL,
		"ah": reg.AH, "ch": reg.CH, "dh": reg.DH, "bh": reg.BH,
		"spl": reg.SPL, "bpl": reg.BPL, "sil": reg.SIL, "dil": reg.DIL,
		"rip": reg.RIP,
	}
	for i, r := range reg.XMM {
		m[xmmName(i)] = r
	}
	for i, r := range reg.YMM {
		m[ymmName(i)] = r
	}
	return m
}

func xmmName(i int) string { return "xmm" + itoa(i) }
func ymmName(i int) string { return "ymm" + itoa(i) }

// itoa is a tiny local int->string so this package doesn't need strconv
// for what is, at init time, a fixed 0..31 range.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

var targetModifiers = map[string]reg.TargetModifier{
	"near":  reg.TargetModNear,
	"short": reg.TargetModShort,
	"far":   reg.TargetModFar,
	"to":    reg.TargetModTo,
}

var segmentNames = buildSegmentNames()

func buildSegmentNames() map[string]reg.Segment {
	m := make(map[string]reg.Segment, len(reg.Segments))
	for _, s := range reg.Segments {
		m[s.Name] = s
	}
	return m
}

// prefixNames maps the spellings a parser sees for legacy instruction
// prefixes onto their typed Prefix; REP/REPE/REPZ share one byte value
// (spec.md's dialects use all three spellings for the same prefix) and
// likewise REPNE/REPNZ.
var prefixNames = map[string]prefix.Prefix{
	"lock":     prefix.Lock,
	"rep":      prefix.Rep,
	"repe":     prefix.Rep,
	"repz":     prefix.Rep,
	"repne":    prefix.RepNE,
	"repnz":    prefix.RepNE,
	"xacquire": prefix.XAcquire,
	"xrelease": prefix.XRelease,
}

// Lookup lowercases name and resolves it against the
// prefix, instruction, register/segment, and target-modifier tables, in
// that order — prefixes and mnemonics are checked first since they are
// the common case and the namespaces never collide in practice.
func Lookup(name string, dialect Dialect) Result {
	lname := strings.ToLower(name)

	if p, ok := prefixNames[lname]; ok {
		return Result{Kind: KindPrefix, Prefix: p}
	}

	mnemonic := lname
	if dialect == DialectGAS {
		mnemonic = stripGASSuffix(lname)
	}
	if g, ok := table.Lookup(mnemonic); ok {
		return Result{Kind: KindGroup, Group: g}
	}

	regName := lname
	if dialect == DialectGAS {
		regName = strings.TrimPrefix(regName, "%")
	}
	if r, ok := registerNames[regName]; ok {
		return Result{Kind: KindRegister, Register: r}
	}
	if s, ok := segmentNames[regName]; ok {
		return Result{Kind: KindSegment, Segment: s}
	}

	if m, ok := targetModifiers[lname]; ok {
		return Result{Kind: KindTargetModifier, Modifier: m}
	}

	return Result{Kind: KindNone}
}

// GateGroup applies the coarse mode/CPU gate spec.md §4.8 describes a
// successful lookup performing before the form matcher ever runs: a
// mnemonic whose every form demands 64-bit mode (or demands NOT 64-bit
// mode) is rejected outright when the running mode disagrees, and a
// mnemonic whose every form requires a CPU feature absent from mask is
// rejected naming that feature. It reports through sink and returns false
// when the mnemonic cannot be used at all in this context; a true result
// only means the mnemonic is *reachable* here, not that any one form will
// match the operands the caller eventually supplies (internal/encoder/match
// owns that finer-grained decision).
func GateGroup(g table.Group, modeBits int, mask cpu.Mask, loc diag.Location, sink *diag.Sink) bool {
	if len(g.Forms) == 0 {
		return true
	}

	allOnly64 := true
	allNot64 := true
	anyCPUSatisfied := false
	for _, f := range g.Forms {
		if !f.Only64() {
			allOnly64 = false
		}
		if !f.Not64() {
			allNot64 = false
		}
		if mask.HasAll(f.CPU) {
			anyCPUSatisfied = true
		}
	}

	if allOnly64 && modeBits != 64 {
		sink.Error(diag.CodeInsnIn64Mode, loc, g.Mnemonic+" requires 64-bit mode")
		return false
	}
	if allNot64 && modeBits == 64 {
		sink.Error(diag.CodeInsnInvalid64Mode, loc, g.Mnemonic+" is not encodable in 64-bit mode")
		return false
	}
	if !anyCPUSatisfied {
		sink.Error(diag.CodeRequiresCPU, loc, g.Mnemonic+" requires a CPU feature not enabled")
		return false
	}
	return true
}

// stripGASSuffix removes a trailing b/w/l/q size suffix from a GAS
// mnemonic (e.g. "movl" -> "mov") so the stripped form can be looked up
// in the dialect-neutral instruction table; the suffix itself becomes the
// Insn's GasSuffix flag elsewhere in the pipeline, not this package's
// concern.
func stripGASSuffix(name string) string {
	if len(name) < 2 {
		return name
	}
	switch name[len(name)-1] {
	case 'b', 'w', 'l', 'q':
		if _, ok := table.Lookup(name); ok {
			return name // an actual mnemonic happens to end in one of these letters (e.g. "call" does not, but be safe)
		}
		if _, ok := table.Lookup(name[:len(name)-1]); ok {
			return name[:len(name)-1]
		}
	}
	return name
}
