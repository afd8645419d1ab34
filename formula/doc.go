// Package formula is the symbolic expression language used to state schema
// invariants.
//
// Terms are split by sort at the type level: [StringTerm], [IntTerm] and
// [Formula] are distinct interfaces, so a string operator never receives an
// integer operand. Constructors are pure and never fail:
//
//	postal := formula.StrVar("postal_code")
//	contact := formula.StrVar("contact_number")
//	f := formula.And(
//	    formula.OneOf(postal, "1001", "2002"),
//	    formula.Equals(formula.Substr(contact, formula.Int(0), formula.Len(postal)), postal),
//	)
//
// Nothing in this package talks to a solver. [Eval] evaluates a formula under
// a complete assignment using SMT-LIB string and integer semantics.
package formula
