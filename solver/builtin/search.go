package builtin

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Gobd/symvalidation/formula"
	"github.com/Gobd/symvalidation/solver"
)

const (
	// maxPad is the longest generated string candidate.
	maxPad = 64
	// ctxEvery is how many evaluations pass between context checks.
	ctxEvery = 1024
)

type search struct {
	ctx     context.Context
	vars    []formula.Var
	domains [][]formula.Value
	// ready[i] holds the conjuncts whose last free variable is vars[i].
	ready     [][]formula.Formula
	env       formula.Env
	budget    int
	evals     int
	undecided bool
	aborted   error
}

func check(ctx context.Context, assertions []formula.Formula, bound formula.Env, budget int) (solver.Status, error) {
	conj := formula.Conjuncts(assertions...)
	exprs := make([]formula.Expr, len(conj))
	for i, f := range conj {
		exprs[i] = f
	}

	var free []formula.Var
	index := map[string]int{}
	for _, v := range formula.Vars(exprs...) {
		if _, ok := bound[v.Name]; ok {
			continue
		}
		if _, ok := index[v.Name]; ok {
			continue
		}
		index[v.Name] = len(free)
		free = append(free, v)
	}

	strs, ints := formula.Literals(exprs...)
	simple := simpleVars(conj)
	complete := true
	s := &search{
		ctx:     ctx,
		vars:    free,
		domains: make([][]formula.Value, len(free)),
		ready:   make([][]formula.Formula, len(free)),
		env:     make(formula.Env, len(bound)+len(free)),
		budget:  budget,
	}
	for k, v := range bound {
		s.env[k] = v
	}
	for i, v := range free {
		if simple[v] {
			s.domains[i] = completeDomain(v.Sort, strs, ints)
			continue
		}
		complete = false
		s.domains[i] = heuristicDomain(v.Sort, strs, ints)
	}

	var ground []formula.Formula
	for _, f := range conj {
		last := -1
		for _, v := range formula.Vars(f) {
			if i, ok := index[v.Name]; ok && i > last {
				last = i
			}
		}
		if last < 0 {
			ground = append(ground, f)
			continue
		}
		s.ready[last] = append(s.ready[last], f)
	}

	for _, f := range ground {
		if !s.eval(f) {
			switch {
			case s.aborted != nil:
				return solver.Unknown, s.aborted
			case s.undecided:
				return solver.Unknown, ErrUndecidable
			}
			return solver.Unsat, nil
		}
	}

	if s.assign(0) {
		return solver.Sat, nil
	}
	switch {
	case s.aborted != nil:
		return solver.Unknown, s.aborted
	case s.undecided:
		return solver.Unknown, ErrUndecidable
	case !complete:
		return solver.Unknown, ErrIncomplete
	}
	return solver.Unsat, nil
}

func (s *search) assign(i int) bool {
	if i == len(s.vars) {
		return true
	}
	name := s.vars[i].Name
	for _, val := range s.domains[i] {
		s.env[name] = val
		ok := true
		for _, f := range s.ready[i] {
			if !s.eval(f) {
				ok = false
				break
			}
		}
		if ok && s.assign(i+1) {
			return true
		}
		if s.aborted != nil {
			return false
		}
	}
	delete(s.env, name)
	return false
}

func (s *search) eval(f formula.Formula) bool {
	if s.aborted != nil {
		return false
	}
	s.evals++
	if s.evals > s.budget {
		s.aborted = ErrBudget
		return false
	}
	if s.evals%ctxEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.aborted = err
			return false
		}
	}
	ok, err := formula.Eval(f, s.env)
	if err != nil {
		s.undecided = true
		return false
	}
	return ok
}

// simpleVars reports, per variable, whether every occurrence is a direct
// comparison against a literal.
func simpleVars(fs []formula.Formula) map[formula.Var]bool {
	exprs := make([]formula.Expr, len(fs))
	for i, f := range fs {
		exprs[i] = f
	}
	simple := map[formula.Var]bool{}
	for _, v := range formula.Vars(exprs...) {
		simple[v] = true
	}
	for _, f := range fs {
		formula.Walk(f, func(e formula.Expr) bool {
			switch n := e.(type) {
			case formula.EqualsExpr:
				if strAgainstLit(n.L, n.R) || strAgainstLit(n.R, n.L) {
					return false
				}
			case formula.CompareExpr:
				if intAgainstLit(n.L, n.R) || intAgainstLit(n.R, n.L) {
					return false
				}
			case formula.StrVar:
				simple[formula.Var{Name: string(n), Sort: formula.SortString}] = false
			case formula.IntVar:
				simple[formula.Var{Name: string(n), Sort: formula.SortInt}] = false
			}
			return true
		})
	}
	return simple
}

func strAgainstLit(a, b formula.StringTerm) bool {
	_, isVar := a.(formula.StrVar)
	_, isLit := b.(formula.StrLit)
	return isVar && isLit
}

func intAgainstLit(a, b formula.IntTerm) bool {
	_, isVar := a.(formula.IntVar)
	_, isLit := b.(formula.IntLit)
	return isVar && isLit
}

// completeDomain covers every equivalence class of a simple variable: each
// literal plus a fresh string, or each integer literal and its neighbours.
func completeDomain(sort formula.Sort, strs []string, ints []int64) []formula.Value {
	if sort == formula.SortInt {
		var out []int64
		for _, c := range ints {
			if c > math.MinInt64 {
				out = append(out, c-1)
			}
			out = append(out, c)
			if c < math.MaxInt64 {
				out = append(out, c+1)
			}
		}
		if len(out) == 0 {
			out = append(out, 0)
		}
		return intValues(out)
	}
	seen := map[string]bool{}
	for _, s := range strs {
		seen[s] = true
	}
	fresh := "~"
	for seen[fresh] {
		fresh += "~"
	}
	return stringValues(append(append([]string{}, strs...), fresh))
}

func heuristicDomain(sort formula.Sort, strs []string, ints []int64) []formula.Value {
	var lengths []int
	for _, n := range ints {
		if n > 0 && n <= maxPad {
			lengths = append(lengths, int(n))
		}
	}
	if sort == formula.SortInt {
		out := []int64{0, 1, -1}
		for _, c := range ints {
			if c > math.MinInt64 {
				out = append(out, c-1)
			}
			out = append(out, c)
			if c < math.MaxInt64 {
				out = append(out, c+1)
			}
		}
		for _, n := range lengths {
			if n <= 18 {
				p := pow10(n - 1)
				out = append(out, p, p*10-1)
			}
		}
		return intValues(out)
	}
	out := []string{""}
	out = append(out, strs...)
	for _, n := range lengths {
		out = append(out, strings.Repeat("0", n), "1"+strings.Repeat("0", n-1))
		for _, s := range strs {
			if l := utf8.RuneCountInString(s); l < n {
				out = append(out, s+strings.Repeat("0", n-l))
			}
		}
	}
	out = append(out, "a")
	return stringValues(out)
}

func pow10(n int) int64 {
	p := int64(1)
	for range n {
		p *= 10
	}
	return p
}

func stringValues(ss []string) []formula.Value {
	seen := map[string]bool{}
	out := make([]formula.Value, 0, len(ss))
	for _, s := range ss {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, formula.StringValue(s))
	}
	return out
}

func intValues(ns []int64) []formula.Value {
	seen := map[int64]bool{}
	out := make([]formula.Value, 0, len(ns))
	for _, n := range ns {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, formula.IntValue(n))
	}
	return out
}
