// Package reg implements the encoder's register model: enumerated register
// classes, a flat Register value type, segment registers with their fixed
// prefix bytes, and target modifiers (NEAR/SHORT/FAR/TO).
//
// Grounded on architecture/x86_64/registers.go — kept as a flat struct plus
// table lookups (size, display name, REX-extension rules) rather than an
// inheritance hierarchy, per the class-flattening hint of the design notes.
package reg

// Class enumerates register classes. A Register's class fully determines
// which mode bits allow it and whether referencing it in 64-bit mode forces
// a REX prefix.
type Class int

const (
	Class8Low   Class = iota // AL..DIL, legacy low byte, no REX needed
	Class8High               // AH/BH/CH/DH — mutually exclusive with REX
	Class8REX                // SPL/BPL/SIL/DIL and R8B..R15B — REX required to address
	Class16                  // AX..R15W
	Class32                  // EAX..R15D
	Class64                  // RAX..R15
	ClassFPU                 // ST0..ST7
	ClassMMX                 // MM0..MM7
	ClassXMM                 // XMM0..XMM31
	ClassYMM                 // YMM0..YMM31
	ClassZMM                 // ZMM0..ZMM31
	ClassCR                  // CR0..CR15
	ClassDR                  // DR0..DR15
	ClassTR                  // TR0..TR7
	ClassRIP                 // the RIP pseudo-register, legal only as a sole EA register
)

// classInfo holds the per-class facts the register model derives from a
// table instead of from virtual dispatch.
type classInfo struct {
	sizeBits    int
	needsREX    bool // referencing a register of this class requires REX in 64-bit mode
	poisonsREX  bool // referencing a register of this class forbids REX entirely (AH/BH/CH/DH)
	displayName string
}

var classTable = map[Class]classInfo{
	Class8Low:  {sizeBits: 8, displayName: "8-bit"},
	Class8High: {sizeBits: 8, poisonsREX: true, displayName: "8-bit (high byte)"},
	Class8REX:  {sizeBits: 8, needsREX: true, displayName: "8-bit (REX)"},
	Class16:    {sizeBits: 16, displayName: "16-bit"},
	Class32:    {sizeBits: 32, displayName: "32-bit"},
	Class64:    {sizeBits: 64, displayName: "64-bit"},
	ClassFPU:   {sizeBits: 80, displayName: "x87"},
	ClassMMX:   {sizeBits: 64, displayName: "MMX"},
	ClassXMM:   {sizeBits: 128, displayName: "XMM"},
	ClassYMM:   {sizeBits: 256, displayName: "YMM"},
	ClassZMM:   {sizeBits: 512, displayName: "ZMM"},
	ClassCR:    {sizeBits: 64, displayName: "control"},
	ClassDR:    {sizeBits: 64, displayName: "debug"},
	ClassTR:    {sizeBits: 32, displayName: "test"},
	ClassRIP:   {sizeBits: 64, displayName: "RIP"},
}

// Register is {class, number 0..31}. number must be in range for its class;
// class fully determines which mode bits allow it. Register is a value
// type: cheap to copy and compare.
type Register struct {
	Class  Class
	Number uint8
}

// Size returns the register's width in bits.
func (r Register) Size() int { return classTable[r.Class].sizeBits }

// NeedsREX reports whether addressing this register in 64-bit mode
// requires a REX prefix (SPL/BPL/SIL/DIL, R8..R15 and their sub-registers).
func (r Register) NeedsREX() bool {
	if classTable[r.Class].needsREX {
		return true
	}
	return r.Number >= 8
}

// PoisonsREX reports whether this register (AH/BH/CH/DH) cannot be
// addressed in an instruction that also carries a REX prefix.
func (r Register) PoisonsREX() bool { return classTable[r.Class].poisonsREX }

// LowBits returns the 3 low bits of the register's encoding, for use in an
// opcode, ModR/M, or SIB field before any REX extension bit is applied.
func (r Register) LowBits() byte { return byte(r.Number) & 0x7 }

// ExtBit returns the REX extension bit (0 or 1) for this register's number.
func (r Register) ExtBit() byte {
	if r.Number >= 8 {
		return 1
	}
	return 0
}

// IsRIP reports whether this register is the RIP pseudo-register.
func (r Register) IsRIP() bool { return r.Class == ClassRIP }

// String returns the class's display name; full mnemonic names live in the
// lookup table (internal/encoder/lookup), which is the single place names
// are attached to registers.
func (r Register) String() string { return classTable[r.Class].displayName }

// RIP is the sole RIP pseudo-register instance.
var RIP = Register{Class: ClassRIP, Number: 0}
