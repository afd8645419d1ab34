package symvalidation

import (
	"context"
	"errors"

	"github.com/Gobd/symvalidation/formula"
	"github.com/Gobd/symvalidation/solver"
)

// ClassKind is the outcome of classifying a schema before touching data.
type ClassKind int

const (
	// NeedsConcreteCheck means the outcome depends on the instance.
	NeedsConcreteCheck ClassKind = iota
	// Unsatisfiable means no instance can pass.
	Unsatisfiable
	// Tautology means every instance passes.
	Tautology
)

func (k ClassKind) String() string {
	switch k {
	case Unsatisfiable:
		return "unsatisfiable"
	case Tautology:
		return "tautology"
	}
	return "needs_concrete_check"
}

// Classification is a ClassKind with the reason it was reached.
type Classification struct {
	Kind   ClassKind
	Reason string
}

// Classify runs the two queries that decide f independently of data:
// an unsatisfiable f is Unsatisfiable, otherwise an unsatisfiable negation
// is Tautology. Anything the solver cannot prove, including an unreachable
// backend, is NeedsConcreteCheck.
func (v *Validator) Classify(ctx context.Context, f formula.Formula) Classification {
	return v.classify(ctx, "", f)
}

func (v *Validator) classify(ctx context.Context, entity string, f formula.Formula) Classification {
	sess, err := v.solver.NewSession(ctx)
	if err != nil {
		v.logger.WarnContext(ctx, "solver session unavailable, classification skipped",
			"entity", entity, "error", err)
		return Classification{Kind: NeedsConcreteCheck, Reason: err.Error()}
	}
	defer sess.Close()

	sess.Assert(f)
	st, satErr := sess.Check(ctx)
	if st == solver.Unsat {
		return Classification{Kind: Unsatisfiable, Reason: ErrUnsatisfiable.Error()}
	}

	sess.Reset()
	sess.Assert(formula.Not(f))
	neg, negErr := sess.Check(ctx)
	if neg == solver.Unsat {
		return Classification{Kind: Tautology, Reason: "negation is unsatisfiable"}
	}

	c := Classification{Kind: NeedsConcreteCheck, Reason: "formula and negation are satisfiable"}
	if err := errors.Join(satErr, negErr); err != nil {
		c.Reason = err.Error()
		v.logger.DebugContext(ctx, "solver could not decide classification",
			"entity", entity, "error", err)
	}
	return c
}
