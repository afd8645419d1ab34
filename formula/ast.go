package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// Sort is the domain of a symbolic variable.
type Sort int

const (
	SortString Sort = iota + 1
	SortInt
)

func (s Sort) String() string {
	switch s {
	case SortString:
		return "String"
	case SortInt:
		return "Int"
	}
	return "Sort(" + strconv.Itoa(int(s)) + ")"
}

// Var is a named placeholder. Identity is name plus sort.
type Var struct {
	Name string
	Sort Sort
}

func (v Var) String() string { return v.Name + ":" + v.Sort.String() }

// Term returns the variable as an expression of its sort.
func (v Var) Term() Expr {
	if v.Sort == SortInt {
		return IntVar(v.Name)
	}
	return StrVar(v.Name)
}

type (
	// Expr is any node of the tree.
	Expr interface {
		fmt.Stringer
		node()
	}

	// StringTerm is an expression of sort String.
	StringTerm interface {
		Expr
		stringTerm()
	}

	// IntTerm is an expression of sort Int.
	IntTerm interface {
		Expr
		intTerm()
	}

	// Formula is a boolean expression.
	Formula interface {
		Expr
		formula()
	}
)

// CmpOp is an integer comparison operator.
type CmpOp int

const (
	OpLt CmpOp = iota + 1
	OpGe
	OpEq
)

func (o CmpOp) String() string {
	switch o {
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	}
	return "?"
}

type (
	StrLit  string
	IntLit  int64
	BoolLit bool
	StrVar  string
	IntVar  string

	LenExpr struct {
		S StringTerm
	}
	SubstrExpr struct {
		S      StringTerm
		Offset IntTerm
		Count  IntTerm
	}
	StrToIntExpr struct {
		S StringTerm
	}
	IntToStrExpr struct {
		I IntTerm
	}
	AddExpr struct {
		Terms []IntTerm
	}
	MulExpr struct {
		K int64
		I IntTerm
	}

	EqualsExpr struct {
		L, R StringTerm
	}
	ContainsExpr struct {
		S, Sub StringTerm
	}
	CompareExpr struct {
		Op   CmpOp
		L, R IntTerm
	}
	NotExpr struct {
		F Formula
	}
	AndExpr struct {
		Fs []Formula
	}
	OrExpr struct {
		Fs []Formula
	}
)

func (StrLit) node()       {}
func (IntLit) node()       {}
func (BoolLit) node()      {}
func (StrVar) node()       {}
func (IntVar) node()       {}
func (LenExpr) node()      {}
func (SubstrExpr) node()   {}
func (StrToIntExpr) node() {}
func (IntToStrExpr) node() {}
func (AddExpr) node()      {}
func (MulExpr) node()      {}
func (EqualsExpr) node()   {}
func (ContainsExpr) node() {}
func (CompareExpr) node()  {}
func (NotExpr) node()      {}
func (AndExpr) node()      {}
func (OrExpr) node()       {}

func (StrLit) stringTerm()       {}
func (StrVar) stringTerm()       {}
func (SubstrExpr) stringTerm()   {}
func (IntToStrExpr) stringTerm() {}

func (IntLit) intTerm()       {}
func (IntVar) intTerm()       {}
func (LenExpr) intTerm()      {}
func (StrToIntExpr) intTerm() {}
func (AddExpr) intTerm()      {}
func (MulExpr) intTerm()      {}

func (BoolLit) formula()      {}
func (EqualsExpr) formula()   {}
func (ContainsExpr) formula() {}
func (CompareExpr) formula()  {}
func (NotExpr) formula()      {}
func (AndExpr) formula()      {}
func (OrExpr) formula()       {}

func (e StrLit) String() string  { return strconv.Quote(string(e)) }
func (e IntLit) String() string  { return strconv.FormatInt(int64(e), 10) }
func (e BoolLit) String() string { return strconv.FormatBool(bool(e)) }
func (e StrVar) String() string  { return string(e) }
func (e IntVar) String() string  { return string(e) }

func (e LenExpr) String() string { return "len(" + e.S.String() + ")" }
func (e SubstrExpr) String() string {
	return "substr(" + e.S.String() + ", " + e.Offset.String() + ", " + e.Count.String() + ")"
}
func (e StrToIntExpr) String() string { return "int(" + e.S.String() + ")" }
func (e IntToStrExpr) String() string { return "str(" + e.I.String() + ")" }
func (e AddExpr) String() string {
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}
func (e MulExpr) String() string { return strconv.FormatInt(e.K, 10) + "*" + e.I.String() }

func (e EqualsExpr) String() string   { return e.L.String() + " == " + e.R.String() }
func (e ContainsExpr) String() string { return "contains(" + e.S.String() + ", " + e.Sub.String() + ")" }
func (e CompareExpr) String() string  { return e.L.String() + " " + e.Op.String() + " " + e.R.String() }
func (e NotExpr) String() string      { return "!(" + e.F.String() + ")" }
func (e AndExpr) String() string      { return joinFormulas(e.Fs, " && ", "true") }
func (e OrExpr) String() string       { return joinFormulas(e.Fs, " || ", "false") }

func joinFormulas(fs []Formula, sep, empty string) string {
	if len(fs) == 0 {
		return empty
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
