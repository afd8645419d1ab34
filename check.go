package symvalidation

import (
	"github.com/Gobd/symvalidation/formula"
)

// Unconstrained returns the qualified names of variables that no property
// or constraint mentions. Such fields are accepted with any value of their
// sort.
//
// Use in tests to catch forgotten rules:
//
//	assert.Empty(t, d.Unconstrained("nickname"))
func (d *Descriptor) Unconstrained(exclude ...string) []string {
	checks := d.Checks()
	exprs := make([]formula.Expr, len(checks))
	for i, c := range checks {
		exprs[i] = c.Formula
	}
	covered := map[string]bool{}
	for _, v := range formula.Vars(exprs...) {
		covered[v.Name] = true
	}
	excl := map[string]bool{}
	for _, e := range exclude {
		excl[e] = true
	}

	var missing []string
	for _, v := range d.Variables {
		if !covered[v.Name] && !excl[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	return missing
}
