// Package relational models finite relational structures: a universe and an
// ordered list of relations over it.
package relational

import (
	"fmt"
	"slices"
)

// Relation is a named set of tuples sharing one arity.
type Relation[E comparable] struct {
	Name   string
	arity  int
	tuples [][]E
}

// NewRelation infers the arity from the tuples. An empty relation has no
// arity to infer and fails with MissingArityError.
func NewRelation[E comparable](name string, tuples [][]E) (Relation[E], error) {
	if len(tuples) == 0 {
		return Relation[E]{}, &MissingArityError{Relation: name}
	}
	return NewRelationOfArity(name, len(tuples[0]), tuples)
}

// NewRelationOfArity builds a relation whose tuples must all have the given
// arity.
func NewRelationOfArity[E comparable](name string, arity int, tuples [][]E) (Relation[E], error) {
	if arity < 0 {
		return Relation[E]{}, fmt.Errorf("relation %s: negative arity %d", name, arity)
	}
	own := make([][]E, 0, len(tuples))
	for _, tuple := range tuples {
		if len(tuple) != arity {
			return Relation[E]{}, &RelationArityMismatchError{Relation: describe(name, tuples)}
		}
		own = append(own, slices.Clone(tuple))
	}
	return Relation[E]{Name: name, arity: arity, tuples: own}, nil
}

func (r Relation[E]) Arity() int {
	return r.arity
}

func (r Relation[E]) Len() int {
	return len(r.tuples)
}

func (r Relation[E]) Tuple(i int) []E {
	return slices.Clone(r.tuples[i])
}

func (r Relation[E]) Tuples() [][]E {
	out := make([][]E, len(r.tuples))
	for i, t := range r.tuples {
		out[i] = slices.Clone(t)
	}
	return out
}

func (r Relation[E]) String() string {
	return describe(r.Name, r.tuples)
}

func describe[E any](name string, tuples [][]E) string {
	if name == "" {
		return fmt.Sprint(tuples)
	}
	return fmt.Sprintf("%s%v", name, tuples)
}
