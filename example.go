package symvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Example returns a documentation-only rule that sets the schema example value.
func Example(ex string) StringRule {
	return StringRule{
		name: "example",
		describe: func(ref *openapi3.SchemaRef) {
			ref.Value.Example = ex
		},
	}
}

// IntExample is like Example for Int fields.
func IntExample(ex int64) IntRule {
	return IntRule{
		name: "example",
		describe: func(ref *openapi3.SchemaRef) {
			ref.Value.Example = ex
		},
	}
}
