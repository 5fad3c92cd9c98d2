// Package common implements InsnCommon: the per-instruction mutable fields
// shared by every encoding path (effective address size, operand size,
// LOCK/REP prefix byte, mode bits), and the prefix-folding pass that turns
// a parsed prefix list into those fields (spec.md §3, §4.2).
package common

import (
	"fmt"

	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
	"github.com/keurnel/x86enc/internal/encoder/table"
)

// State is InsnCommon: {addr-size, oper-size, lockrep-prefix-byte, mode-bits}.
// Each size field is 0 ("no override; use mode default") or a concrete
// width in bits.
type State struct {
	AddrSize      int // 0, 16, 32, or 64
	OperSize      int // 0, 16, 32, or 64
	LockRepByte   byte
	ModeBits      int // 16, 32, or 64
	SegOverride   byte // fixed segment-override prefix byte, or 0
	hasSegOverride bool
}

// New returns a State for the given mode bits with every override unset.
func New(modeBits int) State {
	return State{ModeBits: modeBits}
}

// ApplyPrefixes folds a parsed prefix list into the state, following
// spec.md §4.2 exactly, including the documented "hack" of storing the
// segment-override byte in the same slot as LOCK/REP.
//
// rex is the instruction's REX byte accumulator; it is mutated in place.
// mnemonic gates the LOCK prefix specifically (table.Lockable): LOCK on a
// mnemonic without a read-modify-write memory form is dropped with a
// warning rather than silently emitted as an undefined encoding.
// Returns false (with a CodeRexConflict error recorded) when an explicit
// REX prefix is combined with an AH/BH/CH/DH operand already in use.
func (s *State) ApplyPrefixes(mnemonic string, defaultOper64 int, prefixes []prefix.Prefix, sink *diag.Sink, loc diag.Location, rex *byte) bool {
	for _, p := range prefixes {
		switch p.Kind {
		case prefix.KindLockRep:
			if s.LockRepByte != 0 {
				sink.Warn(diag.CodeMultipleLockRep, loc, "multiple LOCK or REP prefixes, using leftmost")
				continue
			}
			if p.Value == prefix.ValueLock && !table.Lockable(mnemonic) {
				sink.Warn(diag.CodeLockNotEligible, loc,
					fmt.Sprintf("%s is not LOCK-eligible, dropping LOCK prefix", mnemonic))
				continue
			}
			s.LockRepByte = p.Value

		case prefix.KindAddrSize:
			s.AddrSize = addrSizeFromOverride(s.ModeBits)

		case prefix.KindOperSize:
			s.OperSize = operSizeFromOverride(s.ModeBits)

		case prefix.KindSegOverride:
			// Documented hack (spec.md §4.2, §9 open question #1): the
			// segment-override byte is folded into the same slot as
			// LOCK/REP, so an instruction carrying both keeps whichever
			// was folded first and drops the later one with a warning.
			if s.LockRepByte != 0 {
				sink.Warn(diag.CodeMultipleSegOverride, loc, "multiple segment overrides, using leftmost")
				continue
			}
			s.LockRepByte = p.Value
			s.SegOverride = p.Value
			s.hasSegOverride = true

		case prefix.KindREX:
			if *rex == prefix.RexPoison {
				sink.Error(diag.CodeRexConflict, loc, "REX prefix conflicts with an AH/BH/CH/DH operand")
				return false
			}
			if *rex != 0 {
				if *rex < prefix.ValueREXBase {
					sink.Warn(diag.CodeOverridingRex, loc, "overriding generated REX prefix")
				} else {
					sink.Warn(diag.CodeMultipleRex, loc, "multiple REX prefixes, using leftmost")
				}
			}
			s.ModeBits = 64 // parser guarantees REX is only valid in 64-bit mode
			*rex = p.Value

		case prefix.KindAcqRel:
			// TSX hints reuse the LOCK/REP byte slot as well; last writer wins.
			s.LockRepByte = p.Value
		}
	}

	if s.OperSize == 64 && s.ModeBits == 64 && defaultOper64 != 64 {
		if *rex == prefix.RexPoison {
			sink.Warn(diag.CodeIgnoringRexOnJump, loc, "cannot force 64-bit operand size on a REX-forbidding form, ignoring")
		} else {
			*rex |= 0x08 // REX.W
			if *rex < prefix.ValueREXBase {
				*rex |= prefix.ValueREXBase
			}
		}
	}

	return true
}

// Finish applies the mode-default operand size when none was set, clamped
// to 32 bits in 64-bit mode (a 64-bit operand size must be opted into via
// REX.W or the form's default64 opersize).
func (s *State) Finish() {
	if s.OperSize == 0 {
		if s.ModeBits == 64 {
			s.OperSize = 32
		} else {
			s.OperSize = s.ModeBits
		}
	}
}

func addrSizeFromOverride(modeBits int) int {
	switch modeBits {
	case 16:
		return 32
	case 32:
		return 16
	case 64:
		return 32
	default:
		return 0
	}
}

func operSizeFromOverride(modeBits int) int {
	switch modeBits {
	case 16:
		return 32
	default:
		return 16
	}
}

// PrefixByteLength returns the number of legacy prefix bytes this state
// will serialise: one for each field that differs from the mode default,
// plus one for the LOCK/REP (or folded segment-override) slot.
func (s *State) PrefixByteLength() int {
	n := 0
	if s.hasSegOverride {
		n++
	}
	if s.AddrSize != 0 && s.AddrSize != s.ModeBits {
		n++
	}
	if s.OperSize != 0 && s.OperSize != s.ModeBits && !(s.ModeBits == 64 && s.OperSize == 32) {
		n++
	}
	if s.LockRepByte != 0 && !s.hasSegOverride {
		n++
	}
	return n
}

// WritePrefixBytes appends the legacy prefix bytes in the serialisation
// order mandated by spec.md §4.2/§6: segment override, 0x67, 0x66, then
// the LOCK/REP byte.
func (s *State) WritePrefixBytes(out []byte) []byte {
	if s.hasSegOverride {
		out = append(out, s.SegOverride)
	}
	if s.AddrSize != 0 && s.AddrSize != s.ModeBits {
		out = append(out, prefix.ValueAddressSize)
	}
	if s.OperSize != 0 && s.OperSize != s.ModeBits && !(s.ModeBits == 64 && s.OperSize == 32) {
		out = append(out, prefix.ValueOperandSize)
	}
	if s.LockRepByte != 0 && !s.hasSegOverride { // the slot holds the segment byte already written
		out = append(out, s.LockRepByte)
	}
	return out
}

func (s State) String() string {
	return fmt.Sprintf("common.State{Addr:%d Oper:%d LockRep:%#x Mode:%d}", s.AddrSize, s.OperSize, s.LockRepByte, s.ModeBits)
}
