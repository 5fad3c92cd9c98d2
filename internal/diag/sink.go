package diag

import "sync"

// Sink is a passive, append-only collector of diagnostic entries produced
// while the encoder processes a stream of instructions. It is safe for
// concurrent writes, even though a single assembly pass is logically
// sequential (spec.md §5) — the guard mirrors the teacher's own
// debugcontext.DebugContext and exists for the same reason: defensively,
// in case a future driver fans encoding out across goroutines.
//
// The sink does no I/O or formatting; callers such as the CLI or a logging
// adapter consume Entries() to render output.
type Sink struct {
	filePath string
	entries  []*Entry
	mu       sync.Mutex
}

// NewSink returns a *Sink bound to the given primary source file path.
func NewSink(filePath string) *Sink {
	return &Sink{filePath: filePath}
}

// FilePath returns the primary source file path.
func (s *Sink) FilePath() string { return s.filePath }

// Loc creates a Location using the sink's primary file path.
func (s *Sink) Loc(line, column int) Location {
	return Loc(s.filePath, line, column)
}

func (s *Sink) record(severity string, code Code, location Location, message string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &Entry{severity: severity, code: code, message: message, location: location}
	s.entries = append(s.entries, entry)
	return entry
}

// Error records an entry with severity "error" and the given taxonomy code.
func (s *Sink) Error(code Code, location Location, message string) *Entry {
	return s.record(SeverityError, code, location, message)
}

// Warn records an entry with severity "warning" and the given taxonomy code.
func (s *Sink) Warn(code Code, location Location, message string) *Entry {
	return s.record(SeverityWarning, code, location, message)
}

// Info records an entry with severity "info".
func (s *Sink) Info(code Code, location Location, message string) *Entry {
	return s.record(SeverityInfo, code, location, message)
}

// Entries returns all recorded entries in insertion order.
func (s *Sink) Entries() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Errors returns only entries with severity "error".
func (s *Sink) Errors() []*Entry { return s.filter(SeverityError) }

// Warnings returns only entries with severity "warning".
func (s *Sink) Warnings() []*Entry { return s.filter(SeverityWarning) }

// HasErrors reports whether at least one "error" entry has been recorded.
// This is the check the driver uses to decide whether to abort and not
// emit a partial object.
func (s *Sink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the total number of recorded entries.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sink) filter(severity string) []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*Entry
	for _, e := range s.entries {
		if e.severity == severity {
			result = append(result, e)
		}
	}
	return result
}
