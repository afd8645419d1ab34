package symvalidation

import (
	"github.com/Gobd/symvalidation/formula"
)

// Field declares one symbolic variable of a schema, or a nested schema.
type Field struct {
	name     string
	sort     formula.Sort
	strRules []StringRule
	intRules []IntRule
	nested   *Schema
}

// String declares a String field.
func String(name string, rules ...StringRule) Field {
	return Field{name: name, sort: formula.SortString, strRules: rules}
}

// Int declares an Int field.
func Int(name string, rules ...IntRule) Field {
	return Field{name: name, sort: formula.SortInt, intRules: rules}
}

// Nested declares a field whose value is validated by s. A value schema
// contributes its single variable under name; a record schema contributes
// its variables as name.field.
func Nested(name string, s *Schema) Field {
	return Field{name: name, nested: s}
}

// Schema is the registration-time description of an entity type.
// Descriptors are rebuilt from it on every use.
type Schema struct {
	name        string
	base        *Schema
	value       *Field
	fields      []Field
	constraints []Rule
}

// New returns a record schema. Raw values are maps keyed by field name.
func New(name string, fields ...Field) *Schema {
	return &Schema{name: name, fields: fields}
}

// Value returns a schema for a single String value such as a phone number.
// Raw values are plain strings.
func Value(name string, rules ...StringRule) *Schema {
	f := String("", rules...)
	return &Schema{name: name, value: &f}
}

// IntValue is like Value for a single Int value.
func IntValue(name string, rules ...IntRule) *Schema {
	f := Int("", rules...)
	return &Schema{name: name, value: &f}
}

// Constraints appends cross-field rules in declaration order and returns s.
func (s *Schema) Constraints(rules ...Rule) *Schema {
	s.constraints = append(s.constraints, rules...)
	return s
}

// Extend derives a schema that has every field and rule of s followed by the
// given fields and any constraints added to the result.
func (s *Schema) Extend(name string, fields ...Field) *Schema {
	return &Schema{name: name, base: s, fields: fields}
}

// Name returns the entity name.
func (s *Schema) Name() string { return s.name }

// IsValue reports whether raw values of s are scalars.
func (s *Schema) IsValue() bool { return s.root().value != nil }

func (s *Schema) root() *Schema {
	for s.base != nil {
		s = s.base
	}
	return s
}

// allFields returns the fields of s and its bases, base first.
func (s *Schema) allFields() []Field {
	if s.base == nil {
		return s.fields
	}
	return append(append([]Field{}, s.base.allFields()...), s.fields...)
}
