package table

import (
	"testing"

	"github.com/keurnel/x86enc/internal/encoder/reg"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	g, ok := Lookup("mov")
	if !ok {
		t.Fatal("expected MOV to be found")
	}
	if g.Mnemonic != "MOV" {
		t.Errorf("Mnemonic = %q, want MOV", g.Mnemonic)
	}

	if _, ok := Lookup("NOSUCHINSN"); ok {
		t.Error("expected NOSUCHINSN to be absent")
	}
}

// ADD r/m64,r64 backs spec.md §8 example 6 (`add rax,[rsp+8]`): opcode
// 0x01, REX.W via the DOpS64R modifier.
func TestADD_R64Form(t *testing.T) {
	for _, f := range ADD.Forms {
		if len(f.Opcode) == 1 && f.Opcode[0] == 0x01 && f.Modifiers[0].Kind == ModDOpS64R {
			if len(f.Operands) != 2 {
				t.Errorf("expected 2 operands, got %d", len(f.Operands))
			}
			return
		}
	}
	t.Fatal("expected an ADD r/m64,r64 form with REX.W modifier")
}

func TestVADDPS_HasVEX128And256(t *testing.T) {
	if len(VADDPS.Forms) != 2 {
		t.Fatalf("expected 2 VADDPS forms, got %d", len(VADDPS.Forms))
	}
	if VADDPS.Forms[0].VEX.L256 {
		t.Error("expected first VADDPS form to be VEX.128")
	}
	if !VADDPS.Forms[1].VEX.L256 {
		t.Error("expected second VADDPS form to be VEX.256")
	}
	for _, f := range VADDPS.Forms {
		if !IsVEX(f.SpecialPrefix) {
			t.Error("expected VADDPS forms to select the VEX special prefix")
		}
	}
}

func TestJMP_HasShortAndNearSiblings(t *testing.T) {
	var sawShort, sawNear bool
	for _, f := range JMP.Forms {
		for _, op := range f.Operands {
			switch op.TargetMod {
			case reg.TargetModShort:
				sawShort = true
			case reg.TargetModNear:
				sawNear = true
			}
		}
	}
	if !sawShort || !sawNear {
		t.Error("expected JMP to have both SHORT and NEAR relative forms")
	}
}

func TestLockable(t *testing.T) {
	if !Lockable("ADD") {
		t.Error("ADD should be lockable")
	}
	if Lockable("RET") {
		t.Error("RET should not be reported lockable")
	}
}
