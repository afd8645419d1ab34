package formula

// True and False are the boolean constants.
const (
	True  = BoolLit(true)
	False = BoolLit(false)
)

// Str returns a string literal.
func Str(s string) StrLit { return StrLit(s) }

// Int returns an integer literal.
func Int(n int64) IntLit { return IntLit(n) }

// Len is the character length of s.
func Len(s StringTerm) IntTerm { return LenExpr{S: s} }

// Substr is the substring of s starting at offset with at most count characters.
func Substr(s StringTerm, offset, count IntTerm) StringTerm {
	return SubstrExpr{S: s, Offset: offset, Count: count}
}

// StrToInt parses s as a non-negative decimal, or -1 when s is not all digits.
func StrToInt(s StringTerm) IntTerm { return StrToIntExpr{S: s} }

// IntToStr renders i in decimal, or "" when i is negative.
func IntToStr(i IntTerm) StringTerm { return IntToStrExpr{I: i} }

// Add sums the terms.
func Add(terms ...IntTerm) IntTerm { return AddExpr{Terms: terms} }

// Mul scales i by the constant k.
func Mul(k int64, i IntTerm) IntTerm { return MulExpr{K: k, I: i} }

// Equals holds when both strings are identical.
func Equals(l, r StringTerm) Formula { return EqualsExpr{L: l, R: r} }

// Contains holds when sub occurs in s.
func Contains(s, sub StringTerm) Formula { return ContainsExpr{S: s, Sub: sub} }

// Lt is l < r.
func Lt(l, r IntTerm) Formula { return CompareExpr{Op: OpLt, L: l, R: r} }

// Ge is l >= r.
func Ge(l, r IntTerm) Formula { return CompareExpr{Op: OpGe, L: l, R: r} }

// Gt is l > r, stated as r < l.
func Gt(l, r IntTerm) Formula { return CompareExpr{Op: OpLt, L: r, R: l} }

// Le is l <= r, stated as r >= l.
func Le(l, r IntTerm) Formula { return CompareExpr{Op: OpGe, L: r, R: l} }

// IntEquals is l == r.
func IntEquals(l, r IntTerm) Formula { return CompareExpr{Op: OpEq, L: l, R: r} }

// Not negates f.
func Not(f Formula) Formula { return NotExpr{F: f} }

// And is the conjunction of fs. An empty conjunction is true.
func And(fs ...Formula) Formula { return AndExpr{Fs: fs} }

// Or is the disjunction of fs. An empty disjunction is false.
func Or(fs ...Formula) Formula { return OrExpr{Fs: fs} }

// OneOf holds when s equals one of values.
func OneOf(s StringTerm, values ...string) Formula {
	fs := make([]Formula, len(values))
	for i, v := range values {
		fs[i] = Equals(s, Str(v))
	}
	return Or(fs...)
}

// Conjuncts flattens nested conjunctions into their leaves.
func Conjuncts(fs ...Formula) []Formula {
	var out []Formula
	for _, f := range fs {
		if a, ok := f.(AndExpr); ok {
			out = append(out, Conjuncts(a.Fs...)...)
			continue
		}
		out = append(out, f)
	}
	return out
}
