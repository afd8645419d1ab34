package symvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

type (
	// StringRule states one intrinsic property of a String field. A rule
	// without a formula only documents the field.
	StringRule struct {
		name     string
		message  string
		build    func(formula.StringTerm) formula.Formula
		describe func(ref *openapi3.SchemaRef)
		fallback *formula.Value
	}

	// IntRule states one intrinsic property of an Int field.
	IntRule struct {
		name     string
		message  string
		build    func(formula.IntTerm) formula.Formula
		describe func(ref *openapi3.SchemaRef)
		fallback *formula.Value
	}

	// Rule is a cross-field constraint over a schema's terms.
	Rule struct {
		name    string
		message string
		field   string
		build   func(*Terms) formula.Formula
	}

	// Check is one rule resolved against a descriptor's variables.
	Check struct {
		// Rule is the qualified rule name, e.g. "postal_code.in".
		Rule string
		// Field is the variable the rule is attributed to, if any.
		Field   string
		Message string
		Formula formula.Formula
	}
)

// Error replaces the message reported when the rule fails.
func (r StringRule) Error(message string) StringRule {
	r.message = message
	return r
}

// Error replaces the message reported when the rule fails.
func (r IntRule) Error(message string) IntRule {
	r.message = message
	return r
}

// Constraint returns a cross-field rule named name. build receives the terms
// of the schema the rule is attached to.
func Constraint(name, message string, build func(*Terms) formula.Formula) Rule {
	return Rule{name: name, message: message, build: build}
}

// On attributes the rule's failures to field.
func (r Rule) On(field string) Rule {
	r.field = field
	return r
}

// Name returns the rule name.
func (r Rule) Name() string { return r.name }
