package symvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// Default returns a rule that binds a missing String field to a and sets the
// schema default value. The raw instance is not modified.
func Default(a string) StringRule {
	v := formula.StringValue(a)
	return StringRule{
		name:     "default",
		fallback: &v,
		describe: func(ref *openapi3.SchemaRef) {
			ref.Value.Default = a
		},
	}
}

// IntDefault is like Default for Int fields.
func IntDefault(a int64) IntRule {
	v := formula.IntValue(a)
	return IntRule{
		name:     "default",
		fallback: &v,
		describe: func(ref *openapi3.SchemaRef) {
			ref.Value.Default = a
		},
	}
}
