package algebra

import (
	"iter"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Identity is the equation LHS = RHS, universally quantified over its
// variables.
type Identity struct {
	LHS Term
	RHS Term

	vars  []string
	index map[string]int
}

func NewIdentity(lhs, rhs Term) Identity {
	vars := make([]string, 0, len(lhs.Vars)+len(rhs.Vars))
	index := make(map[string]int)
	for _, t := range []Term{lhs, rhs} {
		for _, v := range t.Vars {
			if _, ok := index[v]; !ok {
				index[v] = len(vars)
				vars = append(vars, v)
			}
		}
	}
	return Identity{LHS: lhs, RHS: rhs, vars: vars, index: index}
}

// Variables lists the variables in order of first appearance, left hand side
// first. Position i in this list is the variable's index.
func (id Identity) Variables() []string {
	return slices.Clone(id.vars)
}

func (id Identity) VariableSet() mapset.Set[string] {
	return mapset.NewSet(id.vars...)
}

// VariableIndex returns the position of v in Variables.
func (id Identity) VariableIndex(v string) (int, bool) {
	i, ok := id.index[v]
	return i, ok
}

// Operations lists the distinct operations of the identity, left hand side
// first.
func (id Identity) Operations() []Operation {
	if id.LHS.Op == id.RHS.Op {
		return []Operation{id.LHS.Op}
	}
	return []Operation{id.LHS.Op, id.RHS.Op}
}

func (id Identity) OperationSet() mapset.Set[Operation] {
	return mapset.NewSet(id.Operations()...)
}

// PlugIn substitutes valuation[i] for the i-th variable and returns the
// argument tuples of both sides.
func PlugIn[E any](id Identity, valuation []E) (lhs, rhs []E) {
	lhs = make([]E, len(id.LHS.Vars))
	for i, v := range id.LHS.Vars {
		lhs[i] = valuation[id.index[v]]
	}
	rhs = make([]E, len(id.RHS.Vars))
	for i, v := range id.RHS.Vars {
		rhs[i] = valuation[id.index[v]]
	}
	return lhs, rhs
}

// PlugInAll runs PlugIn over every valuation of the variables in universe,
// in lexicographic order of the valuations.
func PlugInAll[E any](id Identity, universe []E) iter.Seq2[[]E, []E] {
	return func(yield func([]E, []E) bool) {
		valuation := make([]E, len(id.vars))
		for ranks := range Power(len(universe), len(id.vars)) {
			for i, r := range ranks {
				valuation[i] = universe[r]
			}
			if !yield(PlugIn(id, valuation)) {
				return
			}
		}
	}
}

func (id Identity) String() string {
	return id.LHS.String() + " = " + id.RHS.String()
}
