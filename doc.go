// Package symvalidation decides schema invariants symbolically before it
// looks at data.
//
// A [Schema] declares fields and the rules they obey. Field rules such as
// [In] or [Digits] become the schema's intrinsic properties; [Constraint]
// rules relate fields to each other. Nested schemas are folded into their
// parent and [Schema.Extend] derives a schema with more fields and rules.
//
//	var User = symvalidation.New("User",
//	    symvalidation.String("password1"),
//	    symvalidation.String("password2"),
//	).Constraints(
//	    symvalidation.Constraint("passwords_match", "Passwords do not match",
//	        func(t *symvalidation.Terms) formula.Formula {
//	            return formula.Equals(t.Str("password1"), t.Str("password2"))
//	        }),
//	)
//
// Every validation first classifies the conjunction of all rules with two
// solver queries: if the rules are unsatisfiable every instance is rejected,
// if their negation is unsatisfiable every instance is accepted. Only
// otherwise are the concrete values bound and the rules checked one by one,
// reporting the first that fails:
//
//	v := symvalidation.NewValidator(builtin.New())
//	_, err := v.Validate(ctx, User, map[string]any{"password1": "a", "password2": "b"})
//	// err.Error() == "Passwords do not match"
//
// Sub-packages:
//   - formula: the expression language rules are written in
//   - solver: the backend contract, with builtin and z3 implementations
//   - openapi: OpenAPI documents describing registered schemas
//   - transform: normalization of raw values before validation
package symvalidation
