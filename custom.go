package symvalidation

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// StringBy wraps build into a String field rule; message is both the error
// and the schema description.
func StringBy(name, message string, build func(formula.StringTerm) formula.Formula) StringRule {
	return StringRule{
		name:    name,
		message: message,
		build:   build,
		describe: func(ref *openapi3.SchemaRef) {
			appendDescription(ref, message)
		},
	}
}

// IntBy wraps build into an Int field rule.
func IntBy(name, message string, build func(formula.IntTerm) formula.Formula) IntRule {
	return IntRule{
		name:    name,
		message: message,
		build:   build,
		describe: func(ref *openapi3.SchemaRef) {
			appendDescription(ref, message)
		},
	}
}

func appendDescription(ref *openapi3.SchemaRef, desc string) {
	if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
		ref.Value.Description += " "
	}
	ref.Value.Description += desc
}
