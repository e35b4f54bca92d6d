package translate

import (
	"context"
	"fmt"
	"time"

	log "github.com/golang/glog"

	"polinv/algebra"
	"polinv/cnf"
	"polinv/relational"
	"polinv/sat"
	"polinv/verify"
)

// Options tune a query.
type Options struct {
	// Solver names the backend, see sat.Open.
	Solver string
	// Workers > 1 generates clause families concurrently and hands the
	// solver a materialised instance.
	Workers int
	// Verify re-checks decoded tables with the verify package.
	Verify bool
}

type Stats struct {
	Operations int
	Variables  int
	Clauses    int
	Solver     string
	Elapsed    time.Duration
}

// Result is the outcome of a query. Satisfiable is false when no operations
// satisfying the request exist; Tables is then nil.
type Result[E comparable] struct {
	Satisfiable bool
	Tables      map[string]*Table[E]
	Stats       Stats
}

// FindPolymorphisms searches for operations from A to B that preserve every
// relation and satisfy all identities at once.
func FindPolymorphisms[E comparable](ctx context.Context, a, b *relational.Structure[E], identities []algebra.Identity, opts Options) (*Result[E], error) {
	solver, err := sat.Open(opts.Solver)
	if err != nil {
		return nil, err
	}
	return Find(ctx, solver, a, b, identities, opts)
}

// Find is FindPolymorphisms with an explicit solver.
func Find[E comparable](ctx context.Context, solver sat.Solver, a, b *relational.Structure[E], identities []algebra.Identity, opts Options) (*Result[E], error) {
	t, err := NewTranslator(a, b, identities)
	if err != nil {
		return nil, err
	}
	name := opts.Solver
	if name == "" {
		name = sat.DefaultSolver
	}
	res := &Result[E]{
		Stats: Stats{
			Operations: len(t.Operations()),
			Variables:  t.Allocator().NumVars(),
			Clauses:    t.NumClauses(),
			Solver:     name,
		},
	}
	if len(t.Operations()) == 0 {
		res.Satisfiable = true
		res.Tables = map[string]*Table[E]{}
		return res, nil
	}

	inst := t.Instance()
	if opts.Workers > 1 {
		inst = cnf.FromClauses(t.Allocator().NumVars(), t.Collect(opts.Workers))
	}
	log.V(1).Infof("solving with %s: %d operations, %d variables, %d clauses",
		name, res.Stats.Operations, res.Stats.Variables, res.Stats.Clauses)
	if log.V(2) {
		c := t.Counts()
		log.Infof("clauses: %d functionality, %d agreement, %d existence, %d identity in %d groups",
			c.Functionality, c.Agreement, c.Existence, c.Identity, len(t.groups))
	}

	start := time.Now()
	model, err := solver.Solve(ctx, inst)
	res.Stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("solver %s: %w", name, err)
	}
	log.V(1).Infof("%s finished in %v, satisfiable: %v", name, res.Stats.Elapsed, model != nil)
	if model == nil {
		return res, nil
	}

	tables, err := t.Decode(model)
	if err != nil {
		return nil, err
	}
	if opts.Verify {
		check := make(map[string]verify.Table[E], len(tables))
		for k, tab := range tables {
			check[k] = tab
		}
		if err := verify.Check(a, b, identities, check); err != nil {
			return nil, fmt.Errorf("decoded tables fail verification: %w", err)
		}
	}
	res.Satisfiable = true
	res.Tables = tables
	return res, nil
}
