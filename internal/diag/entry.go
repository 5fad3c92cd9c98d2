package diag

import "fmt"

// Severity constants for entry classification.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Entry is a single diagnostic event recorded while encoding an Insn. It
// captures what happened, where it happened, which taxonomy code it maps
// to, and how severe it is.
//
// Entries are append-only — once created, their core fields are immutable.
// Only the optional fields (snippet, hint) can be set via the With* chaining
// methods before the entry is considered complete.
type Entry struct {
	severity string
	code     Code
	message  string
	location Location
	snippet  string
	hint     string
}

// Severity returns the entry's severity level.
func (e *Entry) Severity() string { return e.severity }

// Code returns the taxonomy code the entry maps to.
func (e *Entry) Code() Code { return e.code }

// Message returns the human-readable description.
func (e *Entry) Message() string { return e.message }

// Location returns the source position the entry refers to.
func (e *Entry) Location() Location { return e.location }

// Snippet returns the optional source line text, or the empty string.
func (e *Entry) Snippet() string { return e.snippet }

// Hint returns the optional fix suggestion, or the empty string.
func (e *Entry) Hint() string { return e.hint }

// WithSnippet sets the source line snippet and returns the same *Entry for chaining.
func (e *Entry) WithSnippet(text string) *Entry {
	e.snippet = text
	return e
}

// WithHint sets the fix suggestion and returns the same *Entry for chaining.
func (e *Entry) WithHint(text string) *Entry {
	e.hint = text
	return e
}

// String returns "severity CODE location: message".
func (e *Entry) String() string {
	return fmt.Sprintf("%s %s %s: %s", e.severity, e.code, e.location.String(), e.message)
}
