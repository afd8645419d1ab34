package formula

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	env := Env{
		"postal":  StringValue("1001"),
		"contact": StringValue("1001567890"),
		"id":      IntValue(12),
		"neg":     IntValue(-5),
	}
	postal, contact, id := StrVar("postal"), StrVar("contact"), IntVar("id")

	tests := []struct {
		name string
		f    Formula
		want bool
	}{
		{"literal true", True, true},
		{"literal false", False, false},
		{"equals", Equals(postal, Str("1001")), true},
		{"not equals", Not(Equals(postal, Str("1002"))), true},
		{"one of", OneOf(postal, "2002", "1001"), true},
		{"one of empty", OneOf(postal), false},
		{"prefix", Equals(Substr(contact, Int(0), Len(postal)), postal), true},
		{"length", IntEquals(Len(contact), Int(10)), true},
		{"digits", Ge(StrToInt(contact), Int(0)), true},
		{"non digit", IntEquals(StrToInt(Str("12a")), Int(-1)), true},
		{"empty to int", IntEquals(StrToInt(Str("")), Int(-1)), true},
		{"int to str", Equals(IntToStr(id), Str("12")), true},
		{"negative to str", Equals(IntToStr(IntVar("neg")), Str("")), true},
		{"arith", Lt(Mul(2, id), Add(StrToInt(postal), Int(999))), true},
		{"gt", Gt(id, Int(11)), true},
		{"le", Le(id, Int(11)), false},
		{"contains", Contains(contact, Str("5678")), true},
		{"contains empty", Contains(Str(""), Str("")), true},
		{"substr out of range", Equals(Substr(postal, Int(9), Int(2)), Str("")), true},
		{"substr negative count", Equals(Substr(postal, Int(0), Int(-1)), Str("")), true},
		{"substr clipped", Equals(Substr(postal, Int(2), Int(10)), Str("01")), true},
		{"empty and", And(), true},
		{"empty or", Or(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.f, env)
			require.NoError(t, err)
			require.Equal(t, tt.want, got, tt.f.String())
		})
	}
}

func TestEvalErrors(t *testing.T) {
	_, err := Eval(Equals(StrVar("missing"), Str("x")), Env{})
	require.ErrorIs(t, err, ErrUnbound)

	_, err = Eval(Equals(StrVar("x"), Str("x")), Env{"x": IntValue(1)})
	require.ErrorIs(t, err, ErrSortMismatch)

	_, err = Eval(Ge(StrToInt(Str("99999999999999999999")), Int(0)), Env{})
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Eval(Lt(Mul(2, Int(1<<62)), Int(0)), Env{})
	require.ErrorIs(t, err, ErrOverflow)
}

func TestSubstrCountsCharacters(t *testing.T) {
	got, err := Eval(Equals(Substr(Str("äöü"), Int(1), Int(1)), Str("ö")), Env{})
	require.NoError(t, err)
	require.True(t, got)

	got, err = Eval(IntEquals(Len(Str("äöü")), Int(3)), Env{})
	require.NoError(t, err)
	require.True(t, got)
}
