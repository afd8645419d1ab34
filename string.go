package symvalidation

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// Digits returns a rule that checks a String field consists of exactly n
// decimal digits.
func Digits(n int) StringRule {
	return StringRule{
		name:    "digits",
		message: fmt.Sprintf("must have %d digits", n),
		build: func(s formula.StringTerm) formula.Formula {
			return formula.And(
				formula.IntEquals(formula.Len(s), formula.Int(int64(n))),
				formula.Ge(formula.StrToInt(s), formula.Int(0)),
			)
		},
		describe: func(ref *openapi3.SchemaRef) {
			l := uint64(n)
			ref.Value.Pattern = fmt.Sprintf("^[0-9]{%d}$", n)
			ref.Value.MinLength = l
			ref.Value.MaxLength = &l
		},
	}
}

// Numeric returns a rule that checks a String field parses as a
// non-negative decimal integer.
func Numeric() StringRule {
	return StringRule{
		name:    "numeric",
		message: "must be a number",
		build: func(s formula.StringTerm) formula.Formula {
			return formula.Ge(formula.StrToInt(s), formula.Int(0))
		},
		describe: func(ref *openapi3.SchemaRef) {
			ref.Value.Pattern = "^[0-9]+$"
		},
	}
}
