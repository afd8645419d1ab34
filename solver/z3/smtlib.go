package z3

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gobd/symvalidation/formula"
)

// Term renders e as an SMT-LIB v2 term.
func Term(e formula.Expr) string {
	var b strings.Builder
	writeTerm(&b, e)
	return b.String()
}

// Script renders a complete check-sat script: declarations for every
// variable in order of first occurrence, one assert per formula.
func Script(fs []formula.Formula) string {
	exprs := make([]formula.Expr, len(fs))
	for i, f := range fs {
		exprs[i] = f
	}
	var b strings.Builder
	b.WriteString("(set-logic ALL)\n")
	for _, v := range formula.Vars(exprs...) {
		fmt.Fprintf(&b, "(declare-const %s %s)\n", symbol(v.Name), sortName(v.Sort))
	}
	for _, f := range fs {
		b.WriteString("(assert ")
		writeTerm(&b, f)
		b.WriteString(")\n")
	}
	b.WriteString("(check-sat)\n")
	return b.String()
}

func sortName(s formula.Sort) string {
	if s == formula.SortInt {
		return "Int"
	}
	return "String"
}

func symbol(name string) string {
	return "|" + name + "|"
}

// quote escapes a string literal: quotes are doubled and anything outside
// printable ASCII, plus the backslash, becomes a \u{...} escape.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`""`)
		case r == '\\' || r < 0x20 || r > 0x7e:
			fmt.Fprintf(&b, `\u{%x}`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func intLit(n int64) string {
	if n < 0 {
		return "(- " + strconv.FormatUint(uint64(-(n+1))+1, 10) + ")"
	}
	return strconv.FormatInt(n, 10)
}

func writeApp(b *strings.Builder, op string, args ...formula.Expr) {
	b.WriteByte('(')
	b.WriteString(op)
	for _, a := range args {
		b.WriteByte(' ')
		writeTerm(b, a)
	}
	b.WriteByte(')')
}

func writeTerm(b *strings.Builder, e formula.Expr) { //nolint:revive // one case per node kind
	switch n := e.(type) {
	case formula.StrLit:
		b.WriteString(quote(string(n)))
	case formula.IntLit:
		b.WriteString(intLit(int64(n)))
	case formula.BoolLit:
		b.WriteString(strconv.FormatBool(bool(n)))
	case formula.StrVar:
		b.WriteString(symbol(string(n)))
	case formula.IntVar:
		b.WriteString(symbol(string(n)))
	case formula.LenExpr:
		writeApp(b, "str.len", n.S)
	case formula.SubstrExpr:
		writeApp(b, "str.substr", n.S, n.Offset, n.Count)
	case formula.StrToIntExpr:
		writeApp(b, "str.to_int", n.S)
	case formula.IntToStrExpr:
		writeApp(b, "str.from_int", n.I)
	case formula.AddExpr:
		switch len(n.Terms) {
		case 0:
			b.WriteString("0")
		case 1:
			writeTerm(b, n.Terms[0])
		default:
			writeApp(b, "+", intTerms(n.Terms)...)
		}
	case formula.MulExpr:
		writeApp(b, "*", formula.Int(n.K), n.I)
	case formula.EqualsExpr:
		writeApp(b, "=", n.L, n.R)
	case formula.ContainsExpr:
		writeApp(b, "str.contains", n.S, n.Sub)
	case formula.CompareExpr:
		op := "="
		switch n.Op {
		case formula.OpLt:
			op = "<"
		case formula.OpGe:
			op = ">="
		}
		writeApp(b, op, n.L, n.R)
	case formula.NotExpr:
		writeApp(b, "not", n.F)
	case formula.AndExpr:
		writeJunction(b, "and", "true", n.Fs)
	case formula.OrExpr:
		writeJunction(b, "or", "false", n.Fs)
	default:
		panic(fmt.Sprintf("z3: unsupported node %T", e))
	}
}

func writeJunction(b *strings.Builder, op, empty string, fs []formula.Formula) {
	switch len(fs) {
	case 0:
		b.WriteString(empty)
	case 1:
		writeTerm(b, fs[0])
	default:
		args := make([]formula.Expr, len(fs))
		for i, f := range fs {
			args[i] = f
		}
		writeApp(b, op, args...)
	}
}

func intTerms(ts []formula.IntTerm) []formula.Expr {
	out := make([]formula.Expr, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}
