// Package sat hands CNF instances to SAT solvers, in process or as external
// programs speaking DIMACS.
package sat

import (
	"context"
	"fmt"
	"strings"

	"polinv/cnf"
)

// Solver decides a CNF instance. A satisfiable instance yields a model of
// length inst.NumVars where entry i is +(i+1) or -(i+1); an unsatisfiable
// one yields a nil model and a nil error.
type Solver interface {
	Solve(ctx context.Context, inst cnf.Instance) ([]int, error)
}

type UnknownSolverError struct {
	Name string
}

func (e *UnknownSolverError) Error() string {
	return fmt.Sprintf("unknown solver %q", e.Name)
}

const DefaultSolver = "gini"

// externals are the solvers run by bare name, with the flags that make them
// print a model in the SAT competition format.
var externals = map[string][]string{
	"cadical": {"-q"},
	"kissat":  {"-q"},
	"glucose": {"-model", "-verb=0"},
}

// Open returns the solver called name:
//
//	gini, g3 or ""       in-process gini
//	gophersat            in-process gophersat
//	cadical, kissat, ... known external solvers found on PATH
//	external:CMD ARGS    any program reading DIMACS on stdin
func Open(name string) (Solver, error) {
	switch name {
	case "", "gini", "g3":
		return NewGiniSolver(), nil
	case "gophersat":
		return NewGopherSolver(), nil
	}
	if args, ok := externals[name]; ok {
		return NewExternalSolver(name, args...), nil
	}
	if cmd, ok := strings.CutPrefix(name, "external:"); ok {
		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			return nil, &UnknownSolverError{Name: name}
		}
		return NewExternalSolver(fields[0], fields[1:]...), nil
	}
	return nil, &UnknownSolverError{Name: name}
}

func toModel(numVars int, value func(v int) bool) []int {
	model := make([]int, numVars)
	for i := range model {
		if value(i + 1) {
			model[i] = i + 1
		} else {
			model[i] = -(i + 1)
		}
	}
	return model
}
