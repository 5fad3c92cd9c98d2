package frontend

import (
	"strconv"
	"strings"

	"github.com/keurnel/x86enc/internal/config"
	"github.com/keurnel/x86enc/internal/diag"
	"github.com/keurnel/x86enc/internal/encoder/ea"
	"github.com/keurnel/x86enc/internal/encoder/lookup"
	"github.com/keurnel/x86enc/internal/encoder/operand"
	"github.com/keurnel/x86enc/internal/encoder/reg"
	"github.com/keurnel/x86enc/internal/encoder/value"
)

// sizeSpecs maps a leading NASM-style size keyword to its bit width.
var sizeSpecs = map[string]int{
	"byte": 8, "word": 16, "dword": 32, "qword": 64,
	"tword": 80, "xmmword": 128, "ymmword": 256,
}

var targetModWords = map[string]reg.TargetModifier{
	"short": reg.TargetModShort,
	"near":  reg.TargetModNear,
	"far":   reg.TargetModFar,
	"to":    reg.TargetModTo,
}

// parseOperands splits rest on top-level commas and parses each field. A
// segment-override prefix found on any operand (e.g. "fs:[rax]") is
// returned separately, since spec.md models it as an instruction-wide
// InsnCommon slot rather than a per-operand attribute.
func parseOperands(rest string, loc diag.Location, dialect lookup.Dialect, cfg *config.Config, sink *diag.Sink) (ops []operand.Operand, seg *reg.Segment, segLoc diag.Location, ok bool) {
	fields := splitTopLevelCommas(rest)
	ops = make([]operand.Operand, 0, len(fields))
	for _, f := range fields {
		op, fieldSeg, got := parseOperand(strings.TrimSpace(f), loc, dialect, cfg, sink)
		if !got {
			return nil, nil, diag.Location{}, false
		}
		if fieldSeg != nil {
			seg = fieldSeg
			segLoc = loc
		}
		ops = append(ops, op)
	}
	return ops, seg, segLoc, true
}

func splitTopLevelCommas(s string) []string {
	var fields []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	fields = append(fields, s[start:])
	return fields
}

// parseOperand parses one operand field: an optional target-modifier
// keyword, an optional size spec ("dword ptr"), an optional segment
// override ("fs:"), then a register, memory, or immediate operand.
func parseOperand(field string, loc diag.Location, dialect lookup.Dialect, cfg *config.Config, sink *diag.Sink) (operand.Operand, *reg.Segment, bool) {
	var op operand.Operand
	op.SourceLocation = loc

	words := strings.Fields(field)
	i := 0
	for i < len(words) {
		lw := strings.ToLower(words[i])
		if tm, ok := targetModWords[lw]; ok {
			op.TargetMod = tm
			i++
			continue
		}
		if sz, ok := sizeSpecs[lw]; ok {
			op.ExplicitSizeBits = sz
			op.Strict = true
			i++
			if i < len(words) && strings.ToLower(words[i]) == "ptr" {
				i++
			}
			continue
		}
		break
	}
	if i >= len(words) {
		sink.Error(diag.CodeSyntaxError, loc, "empty operand")
		return operand.Operand{}, nil, false
	}
	core := strings.Join(words[i:], "")

	var seg *reg.Segment
	if ci := strings.IndexByte(core, ':'); ci >= 0 && !strings.HasPrefix(core, "[") {
		segWord := core[:ci]
		res := lookup.Lookup(segWord, dialect)
		if res.Kind == lookup.KindSegment {
			s := res.Segment
			seg = &s
			core = core[ci+1:]
		}
	}

	switch {
	case strings.HasPrefix(core, "[") && strings.HasSuffix(core, "]"):
		expr, ok := parseMemory(core[1:len(core)-1], loc, dialect, cfg, sink)
		if !ok {
			return operand.Operand{}, nil, false
		}
		op.Kind = operand.KindMem
		op.Mem = expr
		op.Deref = true
		return op, seg, true

	default:
		res := lookup.Lookup(core, dialect)
		switch res.Kind {
		case lookup.KindRegister:
			op.Kind = operand.KindReg
			op.Reg = res.Register
			if op.ExplicitSizeBits == 0 {
				op.ExplicitSizeBits = res.Register.Size()
			}
			return op, seg, true
		case lookup.KindSegment:
			op.Kind = operand.KindSegReg
			op.Seg = res.Segment
			return op, seg, true
		}

		n, ok := parseInt(core)
		if !ok {
			sink.Error(diag.CodeUnknownIdent, loc, "unrecognised operand "+core)
			return operand.Operand{}, nil, false
		}
		op.Kind = operand.KindImm
		op.Imm = value.KnownInt(n)
		return op, seg, true
	}
}

// parseMemory parses the inside of a `[...]` memory operand into a flat
// ea.Expr: a sum of `register[*multiplier]` terms plus a displacement,
// with "rip" recognised as the WRT register spec.md §4.3 names.
func parseMemory(inner string, loc diag.Location, dialect lookup.Dialect, cfg *config.Config, sink *diag.Sink) (ea.Expr, bool) {
	var expr ea.Expr
	var dispSum int64
	hasDisp := false

	inner = strings.ReplaceAll(inner, " ", "")
	if inner == "" {
		sink.Error(diag.CodeInvalidEA, loc, "empty memory operand")
		return ea.Expr{}, false
	}

	for _, term := range splitSignedTerms(inner) {
		sign := int64(1)
		t := term
		if strings.HasPrefix(t, "-") {
			sign = -1
			t = t[1:]
		} else if strings.HasPrefix(t, "+") {
			t = t[1:]
		}
		if t == "" {
			continue
		}

		if strings.EqualFold(t, "rip") {
			expr.WRT = "rip"
			continue
		}

		if ai := strings.IndexByte(t, '*'); ai >= 0 {
			regName, multStr := t[:ai], t[ai+1:]
			r, ok := lookupRegister(regName, dialect)
			if !ok {
				sink.Error(diag.CodeInvalidEA, loc, "unknown register "+regName+" in memory operand")
				return ea.Expr{}, false
			}
			mult, ok := parseInt(multStr)
			if !ok {
				sink.Error(diag.CodeInvalidEA, loc, "bad scale "+multStr+" in memory operand")
				return ea.Expr{}, false
			}
			expr.Terms = append(expr.Terms, ea.Term{Reg: r, Mult: int(sign * mult)})
			continue
		}

		if r, ok := lookupRegister(t, dialect); ok {
			expr.Terms = append(expr.Terms, ea.Term{Reg: r, Mult: int(sign)})
			continue
		}

		n, ok := parseInt(t)
		if !ok {
			sink.Error(diag.CodeInvalidEA, loc, "unrecognised term "+t+" in memory operand")
			return ea.Expr{}, false
		}
		dispSum += sign * n
		hasDisp = true
	}

	if expr.WRT == "" && cfg.DefaultRel && len(expr.Terms) == 0 {
		expr.WRT = "rip"
	}
	if hasDisp || expr.WRT == "rip" {
		expr.Disp = value.KnownInt(dispSum)
		expr.HasDisp = true
		if expr.WRT == "rip" {
			expr.DispRelative = true
		}
	}
	return expr, true
}

func lookupRegister(name string, dialect lookup.Dialect) (reg.Register, bool) {
	res := lookup.Lookup(name, dialect)
	if res.Kind != lookup.KindRegister {
		return reg.Register{}, false
	}
	return res.Register, true
}

// splitSignedTerms splits a run-together EA expression such as
// "rax+rsi*4-8" into ["rax", "+rsi*4", "-8"], keeping each term's own
// leading sign attached.
func splitSignedTerms(s string) []string {
	var terms []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			terms = append(terms, s[start:i])
			start = i
		}
	}
	terms = append(terms, s[start:])
	return terms
}

// parseInt accepts decimal, "0x"-hex, "0o"-octal, and "0b"-binary integer
// literals, optionally signed — the same literal shapes
// internal/keurnel_asm/lexer's TokenTypeDetermine recognises for INT
// tokens, minus the separate single-digit-per-base regexes since
// strconv's base-0 parsing already covers all of them.
func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
