package common

import (
	"testing"

	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
)

func TestApplyPrefixes_LockRepWarnsOnMultiple(t *testing.T) {
	s := New(64)
	sink := diag.NewSink("t.asm")
	var rex byte

	ok := s.ApplyPrefixes("XCHG", 32, []prefix.Prefix{prefix.Lock, prefix.Rep}, sink, sink.Loc(1, 0), &rex)
	if !ok {
		t.Fatal("ApplyPrefixes should not fail on duplicate LOCK/REP")
	}
	if s.LockRepByte != prefix.ValueLock {
		t.Errorf("expected leftmost LOCK/REP byte %#x, got %#x", prefix.ValueLock, s.LockRepByte)
	}
	if len(sink.Warnings()) != 1 || sink.Warnings()[0].Code() != diag.CodeMultipleLockRep {
		t.Errorf("expected one CodeMultipleLockRep warning, got %v", sink.Warnings())
	}
}

func TestApplyPrefixes_LockDroppedOnIneligibleMnemonic(t *testing.T) {
	s := New(64)
	sink := diag.NewSink("t.asm")
	var rex byte

	ok := s.ApplyPrefixes("MOV", 32, []prefix.Prefix{prefix.Lock}, sink, sink.Loc(1, 0), &rex)
	if !ok {
		t.Fatal("ApplyPrefixes should not fail outright on an ineligible LOCK, just drop it")
	}
	if s.LockRepByte != 0 {
		t.Errorf("expected LOCK to be dropped, got LockRepByte=%#x", s.LockRepByte)
	}
	if len(sink.Warnings()) != 1 || sink.Warnings()[0].Code() != diag.CodeLockNotEligible {
		t.Errorf("expected one CodeLockNotEligible warning, got %v", sink.Warnings())
	}
}

func TestApplyPrefixes_RexConflict(t *testing.T) {
	s := New(64)
	sink := diag.NewSink("t.asm")
	rex := prefix.RexPoison

	ok := s.ApplyPrefixes("MOV", 32, []prefix.Prefix{prefix.REX(true, false, false, false)}, sink, sink.Loc(1, 0), &rex)
	if ok {
		t.Fatal("expected ApplyPrefixes to fail when REX is poisoned")
	}
	if len(sink.Errors()) != 1 || sink.Errors()[0].Code() != diag.CodeRexConflict {
		t.Errorf("expected one CodeRexConflict error, got %v", sink.Errors())
	}
}

func TestApplyPrefixes_SegOverrideSharesLockRepSlot(t *testing.T) {
	s := New(64)
	sink := diag.NewSink("t.asm")
	var rex byte

	ok := s.ApplyPrefixes("XCHG", 32, []prefix.Prefix{prefix.Lock, prefix.SegOverride(0x64)}, sink, sink.Loc(1, 0), &rex)
	if !ok {
		t.Fatal("ApplyPrefixes failed unexpectedly")
	}
	// Documented hack: LOCK already occupied the shared slot, so the
	// segment override is dropped with a warning.
	if s.LockRepByte != prefix.ValueLock {
		t.Errorf("expected LOCK to keep the shared slot, got %#x", s.LockRepByte)
	}
	if len(sink.Warnings()) != 1 || sink.Warnings()[0].Code() != diag.CodeMultipleSegOverride {
		t.Errorf("expected CodeMultipleSegOverride warning, got %v", sink.Warnings())
	}
}

func TestApplyPrefixes_OperSize64ForcesRexW(t *testing.T) {
	s := New(64)
	s.OperSize = 64
	sink := diag.NewSink("t.asm")
	var rex byte

	ok := s.ApplyPrefixes("MOV", 32, nil, sink, sink.Loc(1, 0), &rex)
	if !ok {
		t.Fatal("ApplyPrefixes failed unexpectedly")
	}
	if rex&0x08 == 0 {
		t.Errorf("expected REX.W to be set, got rex=%#x", rex)
	}
}

func TestFinish_DefaultsOperSize(t *testing.T) {
	tests := []struct {
		mode int
		want int
	}{
		{16, 16},
		{32, 32},
		{64, 32},
	}
	for _, tt := range tests {
		s := New(tt.mode)
		s.Finish()
		if s.OperSize != tt.want {
			t.Errorf("mode %d: OperSize = %d, want %d", tt.mode, s.OperSize, tt.want)
		}
	}
}

func TestWritePrefixBytes_Order(t *testing.T) {
	s := New(64)
	s.AddrSize = 32
	s.OperSize = 16
	s.LockRepByte = prefix.ValueLock

	out := s.WritePrefixBytes(nil)
	want := []byte{prefix.ValueAddressSize, prefix.ValueOperandSize, prefix.ValueLock}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, out[i], want[i])
		}
	}
}
