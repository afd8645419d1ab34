package formula

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnbound is returned when evaluation reaches a variable with no value.
	ErrUnbound = errors.New("formula: unbound variable")
	// ErrOverflow is returned when an integer result does not fit in int64.
	ErrOverflow = errors.New("formula: integer overflow")
	// ErrSortMismatch is returned when a bound value has the wrong sort.
	ErrSortMismatch = errors.New("formula: sort mismatch")
)

// Value is a concrete value of either sort.
type Value struct {
	Sort Sort
	Str  string
	Int  int64
}

// StringValue returns a String value.
func StringValue(s string) Value { return Value{Sort: SortString, Str: s} }

// IntValue returns an Int value.
func IntValue(n int64) Value { return Value{Sort: SortInt, Int: n} }

// Literal returns the value as a literal term.
func (v Value) Literal() Expr {
	if v.Sort == SortInt {
		return Int(v.Int)
	}
	return Str(v.Str)
}

func (v Value) String() string { return v.Literal().String() }

// Env maps variable names to values.
type Env map[string]Value

// Eval decides f under env.
func Eval(f Formula, env Env) (bool, error) {
	switch n := f.(type) {
	case BoolLit:
		return bool(n), nil
	case EqualsExpr:
		l, err := evalString(n.L, env)
		if err != nil {
			return false, err
		}
		r, err := evalString(n.R, env)
		if err != nil {
			return false, err
		}
		return l == r, nil
	case ContainsExpr:
		s, err := evalString(n.S, env)
		if err != nil {
			return false, err
		}
		sub, err := evalString(n.Sub, env)
		if err != nil {
			return false, err
		}
		return strings.Contains(s, sub), nil
	case CompareExpr:
		l, err := evalInt(n.L, env)
		if err != nil {
			return false, err
		}
		r, err := evalInt(n.R, env)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case OpLt:
			return l < r, nil
		case OpGe:
			return l >= r, nil
		case OpEq:
			return l == r, nil
		}
		return false, fmt.Errorf("formula: unknown comparison %d", n.Op)
	case NotExpr:
		b, err := Eval(n.F, env)
		if err != nil {
			return false, err
		}
		return !b, nil
	case AndExpr:
		for _, sub := range n.Fs {
			b, err := Eval(sub, env)
			if err != nil || !b {
				return false, err
			}
		}
		return true, nil
	case OrExpr:
		for _, sub := range n.Fs {
			b, err := Eval(sub, env)
			if err != nil {
				return false, err
			}
			if b {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("formula: cannot evaluate %T", f)
}

func lookup(name string, sort Sort, env Env) (Value, error) {
	v, ok := env[name]
	if !ok {
		return Value{}, fmt.Errorf("%w %q", ErrUnbound, name)
	}
	if v.Sort != sort {
		return Value{}, fmt.Errorf("%w: %q is %s, want %s", ErrSortMismatch, name, v.Sort, sort)
	}
	return v, nil
}

func evalString(t StringTerm, env Env) (string, error) {
	switch n := t.(type) {
	case StrLit:
		return string(n), nil
	case StrVar:
		v, err := lookup(string(n), SortString, env)
		return v.Str, err
	case SubstrExpr:
		s, err := evalString(n.S, env)
		if err != nil {
			return "", err
		}
		off, err := evalInt(n.Offset, env)
		if err != nil {
			return "", err
		}
		cnt, err := evalInt(n.Count, env)
		if err != nil {
			return "", err
		}
		return substr(s, off, cnt), nil
	case IntToStrExpr:
		i, err := evalInt(n.I, env)
		if err != nil {
			return "", err
		}
		if i < 0 {
			return "", nil
		}
		return strconv.FormatInt(i, 10), nil
	}
	return "", fmt.Errorf("formula: cannot evaluate %T as String", t)
}

func evalInt(t IntTerm, env Env) (int64, error) {
	switch n := t.(type) {
	case IntLit:
		return int64(n), nil
	case IntVar:
		v, err := lookup(string(n), SortInt, env)
		return v.Int, err
	case LenExpr:
		s, err := evalString(n.S, env)
		if err != nil {
			return 0, err
		}
		return int64(utf8.RuneCountInString(s)), nil
	case StrToIntExpr:
		s, err := evalString(n.S, env)
		if err != nil {
			return 0, err
		}
		return strToInt(s)
	case AddExpr:
		var sum int64
		for _, sub := range n.Terms {
			x, err := evalInt(sub, env)
			if err != nil {
				return 0, err
			}
			if (x > 0 && sum > math.MaxInt64-x) || (x < 0 && sum < math.MinInt64-x) {
				return 0, ErrOverflow
			}
			sum += x
		}
		return sum, nil
	case MulExpr:
		x, err := evalInt(n.I, env)
		if err != nil {
			return 0, err
		}
		if n.K == 0 || x == 0 {
			return 0, nil
		}
		p := n.K * x
		if p/x != n.K || (n.K == -1 && x == math.MinInt64) || (x == -1 && n.K == math.MinInt64) {
			return 0, ErrOverflow
		}
		return p, nil
	}
	return 0, fmt.Errorf("formula: cannot evaluate %T as Int", t)
}

// substr follows str.substr: out-of-range offsets or non-positive counts
// give the empty string.
func substr(s string, off, cnt int64) string {
	r := []rune(s)
	n := int64(len(r))
	if off < 0 || off >= n || cnt <= 0 {
		return ""
	}
	end := n
	if cnt < n-off {
		end = off + cnt
	}
	return string(r[off:end])
}

// strToInt follows str.to_int: "" and strings with any non-digit map to -1.
func strToInt(s string) (int64, error) {
	if s == "" {
		return -1, nil
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1, nil
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, ErrOverflow
		}
		n = n*10 + d
	}
	return n, nil
}
