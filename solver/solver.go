// Package solver defines the capability a satisfiability backend has to
// provide: scoped sessions that accept assertions and answer check-sat.
//
// Backends live in sub-packages: builtin searches for models in process,
// z3 drives the z3 binary over SMT-LIB.
package solver

import (
	"context"
	"errors"

	"github.com/Gobd/symvalidation/formula"
)

// Status is the answer to a satisfiability query.
type Status int

const (
	Unknown Status = iota
	Sat
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

// ErrUnavailable reports a backend that could not be reached at all.
var ErrUnavailable = errors.New("solver unavailable")

// Solver hands out independent sessions. Implementations must be safe for
// concurrent NewSession calls; a Session itself is not reentrant.
type Solver interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session holds the assertions of one query. Close releases backend state
// and must be called on every path.
type Session interface {
	// Assert adds f to the session.
	Assert(f formula.Formula)
	// Bind asserts v == value.
	Bind(v formula.Var, value formula.Value) error
	// Check reports whether the assertions are satisfiable. A non-nil error
	// always comes with Unknown and explains why no answer was produced.
	Check(ctx context.Context) (Status, error)
	// Reset drops all assertions and bindings.
	Reset()
	Close() error
}
