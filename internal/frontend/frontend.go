// Package frontend implements the minimal textual front-end spec.md §1
// "(added)" scopes in: not a full assembly parser, just enough of a line
// format to build a stream of *insn.Insn values from source text, for the
// CLI and for tests that would otherwise have to construct every Insn by
// hand.
//
// One instruction per line: an optional leading run of legacy-prefix
// keywords (lock, rep, repe, ...), a mnemonic, and a comma-separated
// operand list (registers, memory operands in `[base+index*scale+disp]`
// form, and integer immediates — no label/symbol resolution, per spec.md
// §1's Non-goals). ';' starts a line comment; a bare `name:` line is a
// label declaration and is otherwise ignored, since nothing in this
// repository resolves symbol values.
//
// Grounded on internal/keurnel_asm/lexer's TokenType regexes for what
// counts as an integer literal, and on internal/encoder/lookup for every
// name->value association (mnemonics, registers, segments, target
// modifiers, prefixes) this package itself has no business re-deriving.
package frontend

import (
	"strings"

	"github.com/keurnel/x86enc/internal/config"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/insn"
	"github.com/keurnel/x86enc/internal/encoder/lookup"
	"github.com/keurnel/x86enc/internal/encoder/prefix"
)

// Parse reads source line by line and returns one *insn.Insn per
// instruction line. Syntax errors are recorded on sink and that line is
// skipped rather than aborting the whole file, so a caller can report
// every line's problems in one pass.
func Parse(source string, filePath string, cfg *config.Config, sink *diag.Sink) []*insn.Insn {
	var out []*insn.Insn
	dialect := lookupDialect(cfg)

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isLabel(line) {
			continue
		}

		loc := diag.Loc(filePath, lineNo, 0)
		in := parseLine(line, loc, cfg, dialect, sink)
		if in != nil {
			out = append(out, in)
		}
	}
	return out
}

func lookupDialect(cfg *config.Config) lookup.Dialect {
	if cfg.Dialect == "gas" {
		return lookup.DialectGAS
	}
	return lookup.DialectNASM
}

// stripComment removes a trailing ';'-introduced comment. No string or
// character literals exist in this grammar, so a bare index is safe.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// isLabel reports whether line is a bare "name:" label declaration.
func isLabel(line string) bool {
	if !strings.HasSuffix(line, ":") {
		return false
	}
	name := line[:len(line)-1]
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// parseLine parses one instruction line: leading prefix keywords, a
// mnemonic, then its operand list.
func parseLine(line string, loc diag.Location, cfg *config.Config, dialect lookup.Dialect, sink *diag.Sink) *insn.Insn {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	var prefixes []prefix.Prefix
	idx := 0
	for idx < len(words) {
		res := lookup.Lookup(words[idx], dialect)
		if res.Kind != lookup.KindPrefix {
			break
		}
		prefixes = append(prefixes, res.Prefix)
		idx++
	}
	if idx >= len(words) {
		sink.Error(diag.CodeSyntaxError, loc, "expected a mnemonic after prefix keywords")
		return nil
	}

	mnemonicWord := words[idx]
	res := lookup.Lookup(mnemonicWord, dialect)
	if res.Kind != lookup.KindGroup {
		sink.Error(diag.CodeUnknownMnemonic, loc, "unknown mnemonic "+mnemonicWord)
		return nil
	}
	group := res.Group

	if !lookup.GateGroup(group, cfg.ModeBits, cfg.Mask(), loc, sink) {
		return nil
	}

	rest := strings.TrimSpace(line[indexOfWord(line, idx)+len(mnemonicWord):])

	in := &insn.Insn{
		Mnemonic:    group.Mnemonic,
		Forms:       group.Forms,
		CPUMask:     cfg.Mask(),
		Prefixes:    prefixes,
		ModeBits:    cfg.ModeBits,
		Dialect:     cfg.InsnDialect(),
		ForceStrict: cfg.ForceStrict,
		DefaultRel:  cfg.DefaultRel,
		Loc:         loc,
	}

	if rest != "" {
		ops, seg, segLoc, ok := parseOperands(rest, loc, dialect, cfg, sink)
		if !ok {
			return nil
		}
		in.Operands = ops
		if seg != nil {
			in.SegOverride = seg
			in.SegOverrideLoc = segLoc
			in.Prefixes = append(in.Prefixes, prefix.SegOverride(seg.Prefix))
		}
	}

	return in
}

// indexOfWord returns the byte index of words[idx] within the n-th field
// boundary of line; since strings.Fields already split on whitespace, the
// n-th word's start is found by re-scanning.
func indexOfWord(line string, n int) int {
	count := 0
	inWord := false
	for i, r := range line {
		isSpace := r == ' ' || r == '\t'
		if !isSpace && !inWord {
			inWord = true
			if count == n {
				return i
			}
			count++
		} else if isSpace {
			inWord = false
		}
	}
	return len(line)
}
