package symvalidation

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// Length returns a rule that bounds the character length of a String field.
func Length(lo, hi int) StringRule {
	return StringRule{
		name:    "length",
		message: fmt.Sprintf("the length must be between %d and %d", lo, hi),
		build: func(s formula.StringTerm) formula.Formula {
			n := formula.Len(s)
			return formula.And(
				formula.Ge(n, formula.Int(int64(lo))),
				formula.Le(n, formula.Int(int64(hi))),
			)
		},
		describe: func(ref *openapi3.SchemaRef) {
			fmax := uint64(hi)
			ref.Value.MinLength = uint64(lo)
			ref.Value.MaxLength = &fmax
		},
	}
}
