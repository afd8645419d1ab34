package symvalidation

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// Min returns a rule that checks an Int field is greater than or equal to threshold.
func Min(threshold int64) IntRule {
	return IntRule{
		name:    "min",
		message: fmt.Sprintf("must be no less than %d", threshold),
		build: func(i formula.IntTerm) formula.Formula {
			return formula.Ge(i, formula.Int(threshold))
		},
		describe: func(ref *openapi3.SchemaRef) {
			f := float64(threshold)
			ref.Value.Min = &f
		},
	}
}

// Max returns a rule that checks an Int field is less than or equal to threshold.
func Max(threshold int64) IntRule {
	return IntRule{
		name:    "max",
		message: fmt.Sprintf("must be no greater than %d", threshold),
		build: func(i formula.IntTerm) formula.Formula {
			return formula.Le(i, formula.Int(threshold))
		},
		describe: func(ref *openapi3.SchemaRef) {
			f := float64(threshold)
			ref.Value.Max = &f
		},
	}
}

// MinDigits returns a rule that checks an Int field is non-negative with at
// least n decimal digits.
func MinDigits(n int) IntRule {
	return IntRule{
		name:    "min_digits",
		message: fmt.Sprintf("must have at least %d digits", n),
		build: func(i formula.IntTerm) formula.Formula {
			return formula.Ge(formula.Len(formula.IntToStr(i)), formula.Int(int64(n)))
		},
		describe: func(ref *openapi3.SchemaRef) {
			appendDescription(ref, fmt.Sprintf("at least %d digits", n))
		},
	}
}
