package symvalidation

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// In returns a rule that restricts a String field to the given values.
func In(values ...string) StringRule {
	want := make([]string, len(values))
	enum := make([]any, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
		enum[i] = values[i]
	}
	return StringRule{
		name:    "in",
		message: fmt.Sprintf("must be one of %s", strings.Join(want, ", ")),
		build: func(s formula.StringTerm) formula.Formula {
			return formula.OneOf(s, values...)
		},
		describe: func(ref *openapi3.SchemaRef) {
			ref.Value.Enum = enum
		},
	}
}
