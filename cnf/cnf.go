// Package cnf holds CNF instances as lazy clause sequences and their DIMACS
// text form.
package cnf

import "iter"

// Clause is a disjunction of non-zero literals. A positive literal v asserts
// variable v, a negative one its negation.
type Clause []int

// Instance is a CNF formula over the variables 1..NumVars. Clauses is
// restartable: ranging over it twice yields the same clauses.
type Instance struct {
	NumVars    int
	NumClauses int
	Clauses    iter.Seq[Clause]
}

// FromClauses wraps materialised clauses as an instance.
func FromClauses(numVars int, clauses []Clause) Instance {
	return Instance{
		NumVars:    numVars,
		NumClauses: len(clauses),
		Clauses: func(yield func(Clause) bool) {
			for _, c := range clauses {
				if !yield(c) {
					return
				}
			}
		},
	}
}

// Collect materialises the clauses.
func (inst Instance) Collect() []Clause {
	clauses := make([]Clause, 0, inst.NumClauses)
	for c := range inst.Clauses {
		clauses = append(clauses, c)
	}
	return clauses
}

// Slices returns the clauses as bare int slices, the form most solvers take.
func (inst Instance) Slices() [][]int {
	clauses := make([][]int, 0, inst.NumClauses)
	for c := range inst.Clauses {
		clauses = append(clauses, c)
	}
	return clauses
}

// Falsified returns the first clause that model does not satisfy. model[i]
// is the signed value of variable i+1.
func (inst Instance) Falsified(model []int) (Clause, bool) {
	for c := range inst.Clauses {
		satisfied := false
		for _, lit := range c {
			v := lit
			if v < 0 {
				v = -v
			}
			if v > len(model) {
				continue
			}
			if (model[v-1] > 0) == (lit > 0) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return c, true
		}
	}
	return nil, false
}

// Tautology reports whether c contains a literal and its negation.
func (c Clause) Tautology() bool {
	for i, a := range c {
		for _, b := range c[i+1:] {
			if a == -b {
				return true
			}
		}
	}
	return false
}
