package sat

import (
	"context"

	"github.com/crillab/gophersat/solver"

	"polinv/cnf"
)

type GopherSolver struct{}

func NewGopherSolver() *GopherSolver {
	return &GopherSolver{}
}

// Solve cannot be interrupted once the search has started; ctx is checked
// before and after.
func (s *GopherSolver) Solve(ctx context.Context, inst cnf.Instance) ([]int, error) {
	clauses := make([][]int, 0, inst.NumClauses)
	for c := range inst.Clauses {
		if len(c) == 0 {
			return nil, ctx.Err()
		}
		if c.Tautology() {
			continue
		}
		for _, v := range c {
			if v == 0 {
				panic("propositional variable cannot be zero")
			}
		}
		clauses = append(clauses, c)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pb := solver.ParseSlice(clauses)
	sv := solver.New(pb)
	status := sv.Solve()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if status != solver.Sat {
		return nil, nil
	}
	m := sv.Model()
	return toModel(inst.NumVars, func(v int) bool {
		return v <= len(m) && m[v-1]
	}), nil
}
