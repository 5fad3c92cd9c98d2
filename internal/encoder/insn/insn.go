// Package insn implements Insn (spec.md §3 "parsed"): the fully-parsed
// instruction the matcher and general encoder consume exactly once.
//
// Grounded on internal/asm.Instruction/InstructionForm's "one mnemonic, its
// forms" shape, reused here for the parsed side rather than the static
// table side (internal/encoder/table already covers that role); no
// teacher type models a single parsed instruction carrying its own
// resolved CPU mask and dialect flags, so Insn itself is new, built from
// spec.md §3's field list directly.
package insn

import (
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/cpu"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/table"
)

// Dialect is the parser syntax an Insn was written in; it gates
// GAS-specific matcher behaviour (spec.md §4.4).
type Dialect int

const (
	DialectIntel Dialect = iota
	DialectGAS
)

// Insn is {form group pointer, form count, modifier bytes, active CPU
// mask, operand list, prefix list, optional segment-prefix register +
// source loc, mode-bits, suffix flags (dialect), misc flags, parser
// dialect, force-strict flag, default-rel flag} (spec.md §3). Created by
// the parser, consumed exactly once by the encoder.
type Insn struct {
	Mnemonic string
	Forms    []table.InsnForm // the mnemonic's Group.Forms; "form group pointer, form count" as a Go slice

	CPUMask cpu.Mask

	Operands []operand.Operand
	Prefixes []prefix.Prefix

	SegOverride    *reg.Segment
	SegOverrideLoc diag.Location

	ModeBits int // 16, 32, or 64

	SuffixFlags table.GasSuffix // GAS size suffix, if any
	AVXTagged   bool
	Dialect     Dialect

	ForceStrict bool
	DefaultRel  bool

	Loc diag.Location
}
