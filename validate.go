package symvalidation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gobd/symvalidation/formula"
	"github.com/Gobd/symvalidation/solver"
)

// Outcome labels recorded per validation.
const (
	outcomeAccepted      = "accepted"
	outcomeRejected      = "rejected"
	outcomeContradiction = "contradiction"
	outcomeError         = "error"
)

// Validator classifies and validates instances against schemas. It holds no
// per-call state; every call opens its own solver sessions.
type Validator struct {
	solver  solver.Solver
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithMetrics records classifications and outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

// NewValidator returns a Validator backed by s.
func NewValidator(s solver.Solver, opts ...Option) *Validator {
	v := &Validator{solver: s, logger: slog.Default()}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Describe builds the descriptor of s and classifies it. Use it at
// registration time to catch contradictory schemas before any request.
func (v *Validator) Describe(ctx context.Context, s *Schema) (*Descriptor, error) {
	d, err := s.Descriptor()
	if err != nil {
		return nil, err
	}
	c := v.classify(ctx, d.Entity, d.Formula())
	d.Classification = &c
	v.metrics.classified(d.Entity, c)
	v.logger.DebugContext(ctx, "classified schema",
		"entity", d.Entity, "classification", c.Kind.String(), "reason", c.Reason)
	return d, nil
}

// Validate checks raw against the record schema s and returns raw unchanged
// when it is accepted. Rejections are *ContradictionError,
// *ConstraintViolation or ValidationErrors for missing and mistyped fields.
func (v *Validator) Validate(ctx context.Context, s *Schema, raw map[string]any) (map[string]any, error) {
	if err := v.validate(ctx, s, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ValidateValue is like Validate for value schemas.
func (v *Validator) ValidateValue(ctx context.Context, s *Schema, raw any) (any, error) {
	if err := v.validate(ctx, s, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (v *Validator) validate(ctx context.Context, s *Schema, raw any) error {
	err := v.run(ctx, s, raw)
	v.metrics.validated(s.Name(), outcomeOf(err))
	return err
}

func (v *Validator) run(ctx context.Context, s *Schema, raw any) error {
	d, err := v.Describe(ctx, s)
	if err != nil {
		return err
	}
	switch d.Classification.Kind {
	case Unsatisfiable:
		return &ContradictionError{Entity: d.Entity, Reason: d.Classification.Reason}
	case Tautology:
		return nil
	}

	// Sub-schemas next, so their own rules fail before the parent's.
	if m, ok := raw.(map[string]any); ok {
		for _, f := range s.allFields() {
			if f.nested == nil {
				continue
			}
			sub, present := m[f.name]
			if !present || sub == nil {
				continue
			}
			if _, isMap := sub.(map[string]any); !isMap && !f.nested.IsValue() {
				return ValidationErrors{f.name: errNotObject}
			}
			if err := v.validate(ctx, f.nested, sub); err != nil {
				return err
			}
		}
	}
	return v.concrete(ctx, d, raw)
}

// concrete binds every variable and adds the checks one at a time; the
// first whose addition makes the session unsatisfiable is reported.
func (v *Validator) concrete(ctx context.Context, d *Descriptor, raw any) error {
	env, err := bindValues(d, raw)
	if err != nil {
		return err
	}
	checks := d.Checks()

	sess, err := v.solver.NewSession(ctx)
	if err != nil {
		v.logger.WarnContext(ctx, "solver session unavailable, evaluating directly",
			"entity", d.Entity, "error", err)
		return evalChecks(d, checks, env)
	}
	defer sess.Close()

	for _, x := range d.Variables {
		if err := sess.Bind(x, env[x.Name]); err != nil {
			return fmt.Errorf("bind %s: %w", x.Name, err)
		}
	}
	asserted := make([]formula.Formula, 0, len(checks))
	for _, c := range checks {
		sess.Assert(c.Formula)
		asserted = append(asserted, c.Formula)
		st, err := sess.Check(ctx)
		switch st {
		case solver.Sat:
			continue
		case solver.Unsat:
			return violation(d, c)
		}
		v.logger.WarnContext(ctx, "solver returned unknown on bound check, evaluating directly",
			"entity", d.Entity, "rule", c.Rule, "error", err)
		ok, eerr := formula.Eval(formula.And(asserted...), env)
		if eerr != nil {
			return fmt.Errorf("%w: %s: %w", ErrUndecided, c.Rule, eerr)
		}
		if !ok {
			return violation(d, c)
		}
	}
	return nil
}

func evalChecks(d *Descriptor, checks []Check, env formula.Env) error {
	for _, c := range checks {
		ok, err := formula.Eval(c.Formula, env)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrUndecided, c.Rule, err)
		}
		if !ok {
			return violation(d, c)
		}
	}
	return nil
}

func violation(d *Descriptor, c Check) error {
	return &ConstraintViolation{Entity: d.Entity, Rule: c.Rule, Field: c.Field, Message: c.Message}
}
