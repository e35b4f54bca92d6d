// Package translate reduces the search for polymorphisms satisfying height 1
// identities to SAT, and reads operation tables back from models.
package translate

import (
	"fmt"
	"iter"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"polinv/algebra"
	"polinv/cnf"
	"polinv/graph"
	"polinv/relational"
)

type SignatureMismatchError struct {
	A, B relational.Signature
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("signatures %v and %v do not match (note: order of relations matters here)", e.A, e.B)
}

// OperationConflictError is returned when two identities use the same
// operation name with different arities.
type OperationConflictError struct {
	Name   string
	Arity1 int
	Arity2 int
}

func (e *OperationConflictError) Error() string {
	return fmt.Sprintf("operation %s used with arities %d and %d", e.Name, e.Arity1, e.Arity2)
}

// Translator compiles a polymorphism query into CNF. It holds no mutable
// state after construction, so its clause sequences may be ranged over
// concurrently.
type Translator[E comparable] struct {
	a, b       *relational.Structure[E]
	identities []algebra.Identity
	alloc      *Allocator
	opIndex    map[algebra.Operation]int
	sides      [][2]int // operation indices of each identity's LHS and RHS
	groups     [][]int  // identity indices by connected group of operations
}

// NewTranslator checks that a and b have equal signatures and allocates the
// variables of every operation in identities.
func NewTranslator[E comparable](a, b *relational.Structure[E], identities []algebra.Identity) (*Translator[E], error) {
	if !a.Signature().Equal(b.Signature()) {
		return nil, &SignatureMismatchError{A: a.Signature(), B: b.Signature()}
	}
	ops, err := collectOperations(identities)
	if err != nil {
		return nil, err
	}
	relA := make([]int, len(a.Signature()))
	relB := make([]int, len(relA))
	for r := range relA {
		relA[r] = a.Relation(r).Len()
		relB[r] = b.Relation(r).Len()
	}
	alloc, err := NewAllocator(ops, a.Size(), b.Size(), relA, relB)
	if err != nil {
		return nil, err
	}
	t := &Translator[E]{
		a:          a,
		b:          b,
		identities: identities,
		alloc:      alloc,
		opIndex:    make(map[algebra.Operation]int, len(ops)),
		sides:      make([][2]int, len(identities)),
	}
	for i, op := range ops {
		t.opIndex[op] = i
	}
	deps := graph.NewGraph(len(ops))
	for i, id := range identities {
		l, r := t.opIndex[id.LHS.Op], t.opIndex[id.RHS.Op]
		t.sides[i] = [2]int{l, r}
		deps.AddEdge(l, r)
	}
	components := deps.ComponentOf()
	t.groups = make([][]int, len(deps.Components()))
	for i, s := range t.sides {
		c := components[s[0]]
		t.groups[c] = append(t.groups[c], i)
	}
	return t, nil
}

// collectOperations orders operations by first appearance, left hand sides
// before right hand sides.
func collectOperations(identities []algebra.Identity) ([]algebra.Operation, error) {
	seen := mapset.NewThreadUnsafeSet[algebra.Operation]()
	arity := make(map[string]int)
	ops := make([]algebra.Operation, 0)
	for _, id := range identities {
		for _, op := range id.Operations() {
			if a, ok := arity[op.Name]; ok && a != op.Arity {
				return nil, &OperationConflictError{Name: op.Name, Arity1: a, Arity2: op.Arity}
			}
			arity[op.Name] = op.Arity
			if seen.Add(op) {
				ops = append(ops, op)
			}
		}
	}
	return ops, nil
}

func (t *Translator[E]) Allocator() *Allocator {
	return t.alloc
}

func (t *Translator[E]) Operations() []algebra.Operation {
	return t.alloc.Operations()
}

// Functionality yields, for every input of op over A, one clause asking for
// some output in B and one clause per pair of outputs forbidding both.
func (t *Translator[E]) Functionality(op int) iter.Seq[cnf.Clause] {
	arity := t.alloc.ops[op].Arity
	n, m := t.a.Size(), t.b.Size()
	return func(yield func(cnf.Clause) bool) {
		for input := range algebra.Power(n, arity) {
			ids := make([]int, m)
			for out := range ids {
				ids[out] = t.alloc.FunctionValue(op, input, out)
			}
			if !yield(cnf.Clause(ids)) {
				return
			}
			for i := 0; i < m; i++ {
				for j := i + 1; j < m; j++ {
					if !yield(cnf.Clause{-ids[i], -ids[j]}) {
						return
					}
				}
			}
		}
	}
}

// Existence yields, for every choice of op.Arity tuples of relation rel of A,
// a clause asking for an image tuple in relation rel of B.
func (t *Translator[E]) Existence(op, rel int) iter.Seq[cnf.Clause] {
	arity := t.alloc.ops[op].Arity
	n, m := t.a.Relation(rel).Len(), t.b.Relation(rel).Len()
	return func(yield func(cnf.Clause) bool) {
		for inputs := range algebra.Power(n, arity) {
			c := make(cnf.Clause, m)
			for out := range c {
				c[out] = t.alloc.RelationTuple(op, rel, inputs, out)
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Agreement ties relation-tuple atoms to function-value atoms: if op maps
// the tuples t1..tk to s, then op(t1[i],...,tk[i]) = s[i] for every
// coordinate i.
func (t *Translator[E]) Agreement(op, rel int) iter.Seq[cnf.Clause] {
	arity := t.alloc.ops[op].Arity
	tuplesA := t.a.RankedTuples(rel)
	tuplesB := t.b.RankedTuples(rel)
	width := t.a.Relation(rel).Arity()
	return func(yield func(cnf.Clause) bool) {
		column := make([]int, arity)
		for inputs := range algebra.Power(len(tuplesA), arity) {
			for out, image := range tuplesB {
				atom := t.alloc.RelationTuple(op, rel, inputs, out)
				for i := 0; i < width; i++ {
					for j, in := range inputs {
						column[j] = tuplesA[in][i]
					}
					if !yield(cnf.Clause{-atom, t.alloc.FunctionValue(op, column, image[i])}) {
						return
					}
				}
			}
		}
	}
}

// Identity yields, for every valuation of the identity's variables in A and
// every b in B, the two clauses of lhs = b <=> rhs = b.
func (t *Translator[E]) Identity(i int) iter.Seq[cnf.Clause] {
	id := t.identities[i]
	l, r := t.sides[i][0], t.sides[i][1]
	universe := make([]int, t.a.Size())
	for j := range universe {
		universe[j] = j
	}
	m := t.b.Size()
	return func(yield func(cnf.Clause) bool) {
		for lhs, rhs := range algebra.PlugInAll(id, universe) {
			for out := 0; out < m; out++ {
				x := t.alloc.FunctionValue(l, lhs, out)
				y := t.alloc.FunctionValue(r, rhs, out)
				if !yield(cnf.Clause{x, -y}) || !yield(cnf.Clause{-x, y}) {
					return
				}
			}
		}
	}
}

// Parts splits the instance into independent clause sequences: functionality
// per operation, agreement and existence per operation and relation, and
// identity clauses per group of operations linked by identities.
func (t *Translator[E]) Parts() []iter.Seq[cnf.Clause] {
	ops := len(t.alloc.ops)
	rels := len(t.a.Signature())
	parts := make([]iter.Seq[cnf.Clause], 0, ops*(1+2*rels)+len(t.groups))
	for op := 0; op < ops; op++ {
		parts = append(parts, t.Functionality(op))
	}
	for op := 0; op < ops; op++ {
		for rel := 0; rel < rels; rel++ {
			parts = append(parts, t.Agreement(op, rel))
		}
	}
	for op := 0; op < ops; op++ {
		for rel := 0; rel < rels; rel++ {
			parts = append(parts, t.Existence(op, rel))
		}
	}
	for _, group := range t.groups {
		parts = append(parts, t.identityGroup(group))
	}
	return parts
}

func (t *Translator[E]) identityGroup(group []int) iter.Seq[cnf.Clause] {
	return func(yield func(cnf.Clause) bool) {
		for _, i := range group {
			for c := range t.Identity(i) {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Clauses yields the whole instance lazily.
func (t *Translator[E]) Clauses() iter.Seq[cnf.Clause] {
	parts := t.Parts()
	return func(yield func(cnf.Clause) bool) {
		for _, part := range parts {
			for c := range part {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Counts is the number of clauses in each clause family.
type Counts struct {
	Functionality int
	Agreement     int
	Existence     int
	Identity      int
}

func (c Counts) Total() int {
	return c.Functionality + c.Agreement + c.Existence + c.Identity
}

// Counts sizes each clause family without generating it.
func (t *Translator[E]) Counts() Counts {
	n, m := t.a.Size(), t.b.Size()
	var c Counts
	for _, op := range t.alloc.ops {
		c.Functionality += algebra.Pow(n, op.Arity) * (1 + m*(m-1)/2)
		for rel := range t.a.Signature() {
			inputs := algebra.Pow(t.a.Relation(rel).Len(), op.Arity)
			c.Agreement += inputs * t.b.Relation(rel).Len() * t.a.Relation(rel).Arity()
			c.Existence += inputs
		}
	}
	for _, id := range t.identities {
		c.Identity += algebra.Pow(n, len(id.Variables())) * m * 2
	}
	return c
}

// NumClauses counts the clauses of the instance without generating them.
func (t *Translator[E]) NumClauses() int {
	return t.Counts().Total()
}

// Instance packages the lazy clause sequence with its counts.
func (t *Translator[E]) Instance() cnf.Instance {
	return cnf.Instance{
		NumVars:    t.alloc.NumVars(),
		NumClauses: t.NumClauses(),
		Clauses:    t.Clauses(),
	}
}

// Collect generates the parts on up to workers goroutines and concatenates
// them in part order, so the result does not depend on scheduling.
func (t *Translator[E]) Collect(workers int) []cnf.Clause {
	parts := t.Parts()
	if workers < 1 {
		workers = 1
	}
	results := make([][]cnf.Clause, len(parts))
	sem := make(chan bool, workers)
	var wg sync.WaitGroup
	wg.Add(len(parts))
	for i, part := range parts {
		sem <- true
		go func(i int, part iter.Seq[cnf.Clause]) {
			defer func() {
				<-sem
				wg.Done()
			}()
			for c := range part {
				results[i] = append(results[i], c)
			}
		}(i, part)
	}
	wg.Wait()
	clauses := make([]cnf.Clause, 0, t.NumClauses())
	for _, r := range results {
		clauses = append(clauses, r...)
	}
	return clauses
}
