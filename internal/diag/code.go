package diag

// Code identifies the specific error or warning condition behind an Entry.
// The set below is the error taxonomy of the x86 encoder: one constant per
// condition the encoder, effective-address analyser, matcher, and jump
// encoder can report.
type Code string

// Errors — reported, the instruction does not reach emission.
const (
	CodeBadNumOperands    Code = "BAD_NUM_OPERANDS"
	CodeBadOperandSize    Code = "BAD_OPERAND_SIZE"
	CodeBadInsnOperands   Code = "BAD_INSN_OPERANDS"
	CodeRequiresCPU       Code = "REQUIRES_CPU"
	CodeInsnIn64Mode      Code = "INSN_IN_64MODE"
	CodeInsnInvalid64Mode Code = "INSN_INVALID_64MODE"
	CodePrefixIn64Mode    Code = "PREFIX_IN_64MODE"
	CodeInvalidEA         Code = "INVALID_EA"
	CodeInvalidDispSize   Code = "INVALID_DISP_SIZE"
	CodeEquCircularMem    Code = "EQU_CIRCULAR_REFERENCE_MEM"
	CodeEquCircularImm    Code = "EQU_CIRCULAR_REFERENCE_IMM"
	CodeRexConflict       Code = "REX_CONFLICT"
	CodeMissingJumpForm   Code = "MISSING_JUMP_FORM"
	CodeImmSegmentOverr   Code = "IMM_SEGMENT_OVERRIDE"
	CodeHigh8RexConflict  Code = "HIGH_8_REX_CONFLICT"
	CodeInvalidEASegment  Code = "INVALID_EA_SEGMENT"
	CodeBadAddressSize    Code = "BAD_ADDRESS_SIZE"
	Code16BitEANot64Mode  Code = "16BIT_EA_NOT_64MODE"
	Code16Addr64Mode      Code = "16ADDR_64MODE"
	Code64BitEANot64Mode  Code = "64BIT_EA_NOT_64MODE"
	CodeRipRelNot64Mode   Code = "RIP_REL_NOT_64MODE"
	CodeDestNotSrc1OrSrc3 Code = "DEST_NOT_SRC1_OR_SRC3"
	CodeTooManyOperands   Code = "TOO_MANY_OPERANDS"
	CodeEATooComplex      Code = "EA_TOO_COMPLEX"
	CodeEquValueNotInt    Code = "EQU_VALUE_NOT_INTEGER"
	CodeSizeSpecNotInt    Code = "SIZE_SPEC_NOT_INTEGER"
	CodeInternal          Code = "INTERNAL_ERROR"

	// Front-end syntax errors (internal/frontend): these never reach the
	// encoder at all, since there is no Insn yet to attach a blame operand
	// to.
	CodeSyntaxError     Code = "SYNTAX_ERROR"
	CodeUnknownMnemonic Code = "UNKNOWN_MNEMONIC"
	CodeUnknownIdent    Code = "UNKNOWN_IDENTIFIER"
)

// Warnings — reported, the instruction still reaches emission.
const (
	CodeFixedInvalidDispSize Code = "FIXED_INVALID_DISP_SIZE"
	CodeMultipleLockRep      Code = "MULTIPLE_LOCK_REP"
	CodeMultipleRex          Code = "MULTIPLE_REX"
	CodeMultipleSegOverride  Code = "MULTIPLE_SEG_OVERRIDE"
	CodeOverridingRex        Code = "OVERRIDING_REX"
	CodeIgnoringRexOnJump    Code = "IGNORING_REX_ON_JUMP"
	CodeSegIgnoredInXXMode   Code = "SEG_IGNORED_IN_XXMODE"
	CodeIndirectCallNoDeref  Code = "INDIRECT_CALL_NO_DEREF"
	CodePrefixesSkipped      Code = "PREFIXES_SKIPPED"
	CodeLockNotEligible      Code = "LOCK_NOT_ELIGIBLE"
)
