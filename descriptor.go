package symvalidation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/symvalidation/formula"
)

// valueVar names the variable of a value schema described on its own.
const valueVar = "value"

var fieldNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Descriptor is the symbolic view of one schema: its variables, intrinsic
// properties and cross-field constraints, all in declaration order.
type Descriptor struct {
	Entity      string
	Variables   []formula.Var
	Properties  []Check
	Constraints []Check
	// Classification is set by Validator.Describe.
	Classification *Classification

	value    bool
	bindings []binding
}

// binding locates a variable's concrete value inside a raw instance.
type binding struct {
	v        formula.Var
	path     []string
	describe []func(*openapi3.SchemaRef)
	// fallback is bound when the raw value is missing.
	fallback *formula.Value
}

func (b *binding) add(describe func(*openapi3.SchemaRef), fallback *formula.Value) {
	if describe != nil {
		b.describe = append(b.describe, describe)
	}
	if fallback != nil {
		b.fallback = fallback
	}
}

// Checks returns the properties followed by the constraints.
func (d *Descriptor) Checks() []Check {
	return append(append([]Check{}, d.Properties...), d.Constraints...)
}

// Formula is the conjunction of every check.
func (d *Descriptor) Formula() formula.Formula {
	checks := d.Checks()
	fs := make([]formula.Formula, len(checks))
	for i, c := range checks {
		fs[i] = c.Formula
	}
	return formula.And(fs...)
}

// Variable returns the variable for a qualified field name.
func (d *Descriptor) Variable(name string) (formula.Var, bool) {
	for _, v := range d.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return formula.Var{}, false
}

// Descriptor builds the symbolic view of s. Errors report programming
// mistakes in the schema: bad or duplicate field names, rules referring to
// unknown fields or to a field of the wrong sort.
func (s *Schema) Descriptor() (*Descriptor, error) {
	b := &builder{
		d:    &Descriptor{Entity: s.name, value: s.IsValue()},
		vars: map[string]formula.Var{},
	}
	b.schema(s, "", nil)
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.d, nil
}

type builder struct {
	d    *Descriptor
	vars map[string]formula.Var
	errs []error
}

func (b *builder) fail(entity, format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("symvalidation: %s: %s", entity, fmt.Sprintf(format, args...)))
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + "." + name
}

// schema folds s into the descriptor under prefix. Bases come first, then
// fields in order (nested schemas contribute their own rules as they are
// reached), then the constraints of s.
func (b *builder) schema(s *Schema, prefix string, path []string) {
	if s.base != nil {
		b.schema(s.base, prefix, path)
	}

	self := ""
	if s.root().value != nil {
		self = prefix
		if self == "" {
			self = valueVar
		}
	}
	if s.value != nil {
		b.declare(s.name, self, *s.value, path)
	}
	if len(s.fields) > 0 && self != "" {
		b.fail(s.name, "value schema %q cannot have fields", s.root().name)
		return
	}

	for _, f := range s.fields {
		if !fieldNameRegexp.MatchString(f.name) {
			b.fail(s.name, "invalid field name %q", f.name)
			continue
		}
		name := qualify(prefix, f.name)
		fpath := append(append([]string{}, path...), f.name)
		if f.nested != nil {
			b.schema(f.nested, name, fpath)
			continue
		}
		b.declare(s.name, name, f, fpath)
	}

	terms := &Terms{b: b, entity: s.name, prefix: prefix, self: self}
	for _, r := range s.constraints {
		field := ""
		if r.field != "" {
			field = qualify(prefix, r.field)
			if _, ok := b.vars[field]; !ok {
				b.fail(s.name, "rule %q is attributed to unknown field %q", r.name, r.field)
			}
		}
		f := r.build(terms)
		if f == nil {
			b.fail(s.name, "rule %q built no formula", r.name)
			continue
		}
		b.d.Constraints = append(b.d.Constraints, Check{
			Rule:    qualify(prefix, r.name),
			Field:   field,
			Message: r.message,
			Formula: f,
		})
	}
}

func (b *builder) declare(entity, name string, f Field, path []string) {
	if _, ok := b.vars[name]; ok {
		b.fail(entity, "duplicate field %q", name)
		return
	}
	v := formula.Var{Name: name, Sort: f.sort}
	b.vars[name] = v
	b.d.Variables = append(b.d.Variables, v)

	bd := binding{v: v, path: path}
	switch f.sort {
	case formula.SortString:
		t := formula.StrVar(name)
		for _, r := range f.strRules {
			if r.build != nil {
				b.property(name, r.name, r.message, r.build(t))
			}
			bd.add(r.describe, r.fallback)
		}
	case formula.SortInt:
		t := formula.IntVar(name)
		for _, r := range f.intRules {
			if r.build != nil {
				b.property(name, r.name, r.message, r.build(t))
			}
			bd.add(r.describe, r.fallback)
		}
	}
	b.d.bindings = append(b.d.bindings, bd)
}

func (b *builder) property(field, rule, message string, f formula.Formula) {
	b.d.Properties = append(b.d.Properties, Check{
		Rule:    qualify(field, rule),
		Field:   field,
		Message: message,
		Formula: f,
	})
}

// Terms resolves field names to symbolic terms for constraint builders.
// Names are relative to the schema the constraint is attached to; nested
// record fields are reached as "child.field" and the empty name is the
// value of a value schema.
type Terms struct {
	b      *builder
	entity string
	prefix string
	self   string
}

func (t *Terms) resolve(field string, sort formula.Sort) string {
	name := t.self
	if field != "" {
		name = qualify(t.prefix, field)
	}
	v, ok := t.b.vars[name]
	switch {
	case name == "" || !ok:
		t.b.fail(t.entity, "unknown field %q", field)
	case v.Sort != sort:
		t.b.fail(t.entity, "field %q is %s, used as %s", field, v.Sort, sort)
	}
	return name
}

// Str returns the String term of field.
func (t *Terms) Str(field string) formula.StringTerm {
	return formula.StrVar(t.resolve(field, formula.SortString))
}

// Int returns the Int term of field.
func (t *Terms) Int(field string) formula.IntTerm {
	return formula.IntVar(t.resolve(field, formula.SortInt))
}

// Fields returns the qualified names of the descriptor's variables.
func (d *Descriptor) Fields() []string {
	names := make([]string, len(d.Variables))
	for i, v := range d.Variables {
		names[i] = v.Name
	}
	return names
}

func (d *Descriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s)", d.Entity, strings.Join(d.Fields(), ", "))
	for _, c := range d.Checks() {
		fmt.Fprintf(&b, "\n  %s: %s", c.Rule, c.Formula)
	}
	return b.String()
}
