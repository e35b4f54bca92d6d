package sat

import (
	"context"
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"polinv/cnf"
)

type GiniSolver struct {
	// Poll is how often a running solve checks for cancellation.
	Poll time.Duration
}

func NewGiniSolver() *GiniSolver {
	return &GiniSolver{Poll: 20 * time.Millisecond}
}

func (s *GiniSolver) Solve(ctx context.Context, inst cnf.Instance) ([]int, error) {
	g := gini.NewVc(inst.NumVars, inst.NumClauses)
	for c := range inst.Clauses {
		if len(c) == 0 {
			return nil, ctx.Err()
		}
		for _, v := range c {
			if v < 0 {
				g.Add(z.Var(-v).Neg())
			} else if v > 0 {
				g.Add(z.Var(v).Pos())
			} else {
				panic("propositional variable cannot be zero")
			}
		}
		g.Add(0)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := g.GoSolve()
	ticker := time.NewTicker(s.Poll)
	defer ticker.Stop()
	for {
		if res, done := run.Test(); done {
			if res != 1 {
				return nil, nil
			}
			break
		}
		select {
		case <-ctx.Done():
			run.Stop()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	return toModel(inst.NumVars, func(v int) bool {
		return g.Value(z.Var(v).Pos())
	}), nil
}
