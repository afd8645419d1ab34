package formula

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVars(t *testing.T) {
	f := And(
		Equals(StrVar("b"), StrVar("a")),
		Lt(Mul(2, IntVar("id")), Add(StrToInt(StrVar("a")), Int(999))),
	)
	require.Equal(t, []Var{
		{Name: "b", Sort: SortString},
		{Name: "a", Sort: SortString},
		{Name: "id", Sort: SortInt},
	}, Vars(f))
}

func TestLiterals(t *testing.T) {
	f := Or(OneOf(StrVar("p"), "1001", "2002", "1001"), Lt(Mul(2, IntVar("id")), Int(999)))
	strs, ints := Literals(f)
	require.Equal(t, []string{"1001", "2002"}, strs)
	require.Equal(t, []int64{2, 999}, ints)
}

func TestConjuncts(t *testing.T) {
	a := Equals(StrVar("a"), Str("x"))
	b := Equals(StrVar("b"), Str("y"))
	c := Or(a, b)
	require.Equal(t, []Formula{a, b, c}, Conjuncts(And(a, And(b)), c))
}

func TestString(t *testing.T) {
	f := And(Equals(Substr(StrVar("c"), Int(0), Len(StrVar("p"))), StrVar("p")), Not(Ge(IntVar("n"), Int(3))))
	require.Equal(t, `(substr(c, 0, len(p)) == p && !(n >= 3))`, f.String())
}
