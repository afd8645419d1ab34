// Package builtin is an in-process solver backend.
//
// It decides satisfiability by searching for a model over candidate values
// drawn from the literals of the query. A found model always means Sat. Unsat
// is only reported when the search was exhaustive: every free variable is
// complete, i.e. it only occurs compared against literals, so the literals
// plus one fresh value cover every case. Anything else that finds no model is
// Unknown.
//
// Fully bound queries reduce to direct evaluation and are always decided
// unless evaluation overflows.
package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobd/symvalidation/formula"
	"github.com/Gobd/symvalidation/solver"
)

// DefaultMaxAssignments bounds the number of evaluations per check.
const DefaultMaxAssignments = 1 << 20

var (
	// ErrBudget is returned with Unknown when the search ran out of evaluations.
	ErrBudget = errors.New("builtin: assignment budget exhausted")
	// ErrIncomplete is returned with Unknown when no model was found but the
	// candidate domains did not cover every case.
	ErrIncomplete = errors.New("builtin: no model among candidates")
	// ErrUndecidable is returned with Unknown when evaluation failed.
	ErrUndecidable = errors.New("builtin: evaluation failed")
	errClosed      = errors.New("builtin: session closed")
)

// Option configures a Solver.
type Option func(*Solver)

// WithMaxAssignments sets the evaluation budget of a single check.
func WithMaxAssignments(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxAssignments = n
		}
	}
}

// Solver creates builtin sessions. The zero value is not usable; call New.
type Solver struct {
	maxAssignments int
}

// New returns a builtin solver.
func New(opts ...Option) *Solver {
	s := &Solver{maxAssignments: DefaultMaxAssignments}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewSession implements solver.Solver.
func (s *Solver) NewSession(_ context.Context) (solver.Session, error) {
	return &session{max: s.maxAssignments, bound: formula.Env{}}, nil
}

type session struct {
	max        int
	assertions []formula.Formula
	bound      formula.Env
	conflict   bool
	closed     bool
}

func (s *session) Assert(f formula.Formula) {
	s.assertions = append(s.assertions, f)
}

func (s *session) Bind(v formula.Var, value formula.Value) error {
	if v.Sort != value.Sort {
		return fmt.Errorf("%w: bind %s to %s value", formula.ErrSortMismatch, v, value.Sort)
	}
	if prev, ok := s.bound[v.Name]; ok && prev != value {
		s.conflict = true
	}
	s.bound[v.Name] = value
	return nil
}

func (s *session) Check(ctx context.Context) (solver.Status, error) {
	if s.closed {
		return solver.Unknown, errClosed
	}
	if s.conflict {
		return solver.Unsat, nil
	}
	return check(ctx, s.assertions, s.bound, s.max)
}

func (s *session) Reset() {
	s.assertions = nil
	s.bound = formula.Env{}
	s.conflict = false
}

func (s *session) Close() error {
	s.closed = true
	s.assertions = nil
	s.bound = nil
	return nil
}
