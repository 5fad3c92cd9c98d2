package diag

import "testing"

func TestNewSink(t *testing.T) {
	t.Run("creates sink with file path and empty state", func(t *testing.T) {
		sink := NewSink("main.asm")

		if sink == nil {
			t.Fatal("expected non-nil Sink")
		}
		if sink.FilePath() != "main.asm" {
			t.Errorf("expected file path 'main.asm', got %q", sink.FilePath())
		}
		if sink.Count() != 0 {
			t.Errorf("expected 0 entries, got %d", sink.Count())
		}
		if sink.HasErrors() {
			t.Error("expected HasErrors() == false on an empty sink")
		}
	})
}

func TestSink_RecordAndFilter(t *testing.T) {
	t.Run("errors and warnings are filtered independently", func(t *testing.T) {
		sink := NewSink("main.asm")

		sink.Error(CodeInvalidEA, sink.Loc(3, 5), "bad base register")
		sink.Warn(CodeMultipleLockRep, sink.Loc(4, 1), "multiple LOCK or REP prefixes, using leftmost")
		sink.Warn(CodeOverridingRex, sink.Loc(5, 1), "overriding generated REX prefix")

		if got := len(sink.Errors()); got != 1 {
			t.Fatalf("expected 1 error entry, got %d", got)
		}
		if got := len(sink.Warnings()); got != 2 {
			t.Fatalf("expected 2 warning entries, got %d", got)
		}
		if got := len(sink.Entries()); got != 3 {
			t.Fatalf("expected 3 total entries, got %d", got)
		}
		if !sink.HasErrors() {
			t.Error("expected HasErrors() == true once an error is recorded")
		}
	})

	t.Run("entries returned are a copy", func(t *testing.T) {
		sink := NewSink("main.asm")
		sink.Error(CodeInvalidEA, sink.Loc(1, 0), "boom")

		entries := sink.Entries()
		entries[0] = nil

		if sink.Entries()[0] == nil {
			t.Fatal("mutating the returned slice must not affect the sink")
		}
	})
}

func TestEntry_Chaining(t *testing.T) {
	t.Run("WithSnippet and WithHint mutate and return the same entry", func(t *testing.T) {
		sink := NewSink("main.asm")
		entry := sink.Error(CodeRexConflict, sink.Loc(2, 0), "AH used with REX-required instruction").
			WithSnippet("mov ah, r8b").
			WithHint("use al/spl or drop the REX-requiring operand")

		if entry.Snippet() != "mov ah, r8b" {
			t.Errorf("unexpected snippet %q", entry.Snippet())
		}
		if entry.Hint() == "" {
			t.Error("expected a hint to be set")
		}
		if entry.Code() != CodeRexConflict {
			t.Errorf("expected code %q, got %q", CodeRexConflict, entry.Code())
		}
	})
}

func TestEntry_String(t *testing.T) {
	sink := NewSink("main.asm")
	entry := sink.Error(CodeInvalidEA, Loc("main.asm", 7, 3), "ESP used as index without swap")

	want := "error INVALID_EA main.asm:7:3: ESP used as index without swap"
	if got := entry.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
