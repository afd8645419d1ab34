package formula

// Walk visits e and its children depth-first. Children of a node are skipped
// when fn returns false for it.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case LenExpr:
		Walk(n.S, fn)
	case SubstrExpr:
		Walk(n.S, fn)
		Walk(n.Offset, fn)
		Walk(n.Count, fn)
	case StrToIntExpr:
		Walk(n.S, fn)
	case IntToStrExpr:
		Walk(n.I, fn)
	case AddExpr:
		for _, t := range n.Terms {
			Walk(t, fn)
		}
	case MulExpr:
		Walk(n.I, fn)
	case EqualsExpr:
		Walk(n.L, fn)
		Walk(n.R, fn)
	case ContainsExpr:
		Walk(n.S, fn)
		Walk(n.Sub, fn)
	case CompareExpr:
		Walk(n.L, fn)
		Walk(n.R, fn)
	case NotExpr:
		Walk(n.F, fn)
	case AndExpr:
		for _, f := range n.Fs {
			Walk(f, fn)
		}
	case OrExpr:
		for _, f := range n.Fs {
			Walk(f, fn)
		}
	}
}

// Vars returns the variables of es in order of first occurrence.
func Vars(es ...Expr) []Var {
	seen := map[Var]bool{}
	var out []Var
	for _, e := range es {
		Walk(e, func(n Expr) bool {
			var v Var
			switch t := n.(type) {
			case StrVar:
				v = Var{Name: string(t), Sort: SortString}
			case IntVar:
				v = Var{Name: string(t), Sort: SortInt}
			default:
				return true
			}
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
			return true
		})
	}
	return out
}

// Literals collects the distinct string and integer literals of es in order
// of first occurrence.
func Literals(es ...Expr) (strs []string, ints []int64) {
	seenS := map[string]bool{}
	seenI := map[int64]bool{}
	for _, e := range es {
		Walk(e, func(n Expr) bool {
			switch t := n.(type) {
			case StrLit:
				if !seenS[string(t)] {
					seenS[string(t)] = true
					strs = append(strs, string(t))
				}
			case IntLit:
				if !seenI[int64(t)] {
					seenI[int64(t)] = true
					ints = append(ints, int64(t))
				}
			case MulExpr:
				if !seenI[t.K] {
					seenI[t.K] = true
					ints = append(ints, t.K)
				}
			}
			return true
		})
	}
	return strs, ints
}
