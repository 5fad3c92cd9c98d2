package reg

// XMM registers (128-bit SSE/AVX).
var XMM [32]Register

// YMM registers (256-bit AVX).
var YMM [32]Register

// ZMM registers (512-bit AVX-512).
var ZMM [32]Register

// MM registers (64-bit MMX).
var MM [8]Register

// ST registers (80-bit x87 FPU stack).
var ST [8]Register

// CR0..CR15, DR0..DR15, TR0..TR7.
var (
	CR [16]Register
	DR [16]Register
	TR [8]Register
)

func init() {
	for i := range XMM {
		XMM[i] = Register{Class: ClassXMM, Number: uint8(i)}
	}
	for i := range YMM {
		YMM[i] = Register{Class: ClassYMM, Number: uint8(i)}
	}
	for i := range ZMM {
		ZMM[i] = Register{Class: ClassZMM, Number: uint8(i)}
	}
	for i := range MM {
		MM[i] = Register{Class: ClassMMX, Number: uint8(i)}
	}
	for i := range ST {
		ST[i] = Register{Class: ClassFPU, Number: uint8(i)}
	}
	for i := range CR {
		CR[i] = Register{Class: ClassCR, Number: uint8(i)}
	}
	for i := range DR {
		DR[i] = Register{Class: ClassDR, Number: uint8(i)}
	}
	for i := range TR {
		TR[i] = Register{Class: ClassTR, Number: uint8(i)}
	}
}
