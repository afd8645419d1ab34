package symvalidation

import (
	"github.com/Gobd/symvalidation/formula"
)

// WhenRules applies cross-field rules conditionally: the rules given to
// [When] hold when the condition holds, those given to [WhenRules.Else]
// when it does not. Each rule keeps its name and message.
type WhenRules struct {
	cond      func(*Terms) formula.Formula
	whenRules []Rule
	elseRules []Rule
}

// When returns rules that only have to hold when cond does.
func When(cond func(*Terms) formula.Formula, rules ...Rule) WhenRules {
	return WhenRules{cond: cond, whenRules: rules}
}

// Else specifies rules that have to hold when the [When] condition does not.
func (w WhenRules) Else(rules ...Rule) WhenRules {
	w.elseRules = rules
	return w
}

// Rules returns the conditional rules as implications, ready for
// [Schema.Constraints].
func (w WhenRules) Rules() []Rule {
	out := make([]Rule, 0, len(w.whenRules)+len(w.elseRules))
	for _, r := range w.whenRules {
		out = append(out, w.guard(r, false))
	}
	for _, r := range w.elseRules {
		out = append(out, w.guard(r, true))
	}
	return out
}

// guard turns r into cond => r, or !cond => r when negated.
func (w WhenRules) guard(r Rule, negated bool) Rule {
	build := r.build
	r.build = func(t *Terms) formula.Formula {
		cond, f := w.cond(t), build(t)
		if cond == nil || f == nil {
			return nil
		}
		if negated {
			return formula.Or(cond, f)
		}
		return formula.Or(formula.Not(cond), f)
	}
	return r
}
