package relational

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Signature is the sequence of relation arities of a structure.
type Signature []int

func (s Signature) Equal(o Signature) bool {
	return slices.Equal(s, o)
}

func (s Signature) String() string {
	return fmt.Sprint([]int(s))
}

// Structure is a finite relational structure. It is immutable once built.
// Duplicate tuples in a relation are kept once.
type Structure[E comparable] struct {
	universe  []E
	rank      map[E]int
	relations []Relation[E]
	ranked    [][][]int
}

// New validates the relations against the universe and builds the
// structure.
func New[E comparable](universe []E, relations ...Relation[E]) (*Structure[E], error) {
	rank := make(map[E]int, len(universe))
	for i, e := range universe {
		if _, ok := rank[e]; ok {
			return nil, &DuplicateElementError{Element: e}
		}
		rank[e] = i
	}
	s := &Structure[E]{
		universe:  slices.Clone(universe),
		rank:      rank,
		relations: make([]Relation[E], 0, len(relations)),
		ranked:    make([][][]int, 0, len(relations)),
	}
	for _, r := range relations {
		kept := make([][]E, 0, len(r.tuples))
		ranked := make([][]int, 0, len(r.tuples))
		seen := make(map[string]bool, len(r.tuples))
		for _, tuple := range r.tuples {
			ranks := make([]int, len(tuple))
			for i, e := range tuple {
				j, ok := rank[e]
				if !ok {
					return nil, &RelationOutOfUniverseError{Element: e, Universe: universe}
				}
				ranks[i] = j
			}
			key := rankKey(ranks)
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, tuple)
			ranked = append(ranked, ranks)
		}
		s.relations = append(s.relations, Relation[E]{Name: r.Name, arity: r.arity, tuples: kept})
		s.ranked = append(s.ranked, ranked)
	}
	return s, nil
}

// FromLists builds a structure from bare tuple lists. Empty relations get
// arity emptyArity; a negative emptyArity makes them an error instead.
// Relation arities are all checked before universe membership.
func FromLists[E comparable](universe []E, relations [][][]E, emptyArity int) (*Structure[E], error) {
	rels := make([]Relation[E], len(relations))
	for i, tuples := range relations {
		name := "R" + strconv.Itoa(i)
		var (
			r   Relation[E]
			err error
		)
		if len(tuples) == 0 && emptyArity >= 0 {
			r, err = NewRelationOfArity[E](name, emptyArity, nil)
		} else {
			r, err = NewRelation(name, tuples)
		}
		if err != nil {
			return nil, err
		}
		rels[i] = r
	}
	return New(universe, rels...)
}

func (s *Structure[E]) Universe() []E {
	return slices.Clone(s.universe)
}

func (s *Structure[E]) Size() int {
	return len(s.universe)
}

// Element returns the element of rank i.
func (s *Structure[E]) Element(i int) E {
	return s.universe[i]
}

// Rank returns the position of e in the universe.
func (s *Structure[E]) Rank(e E) (int, bool) {
	i, ok := s.rank[e]
	return i, ok
}

func (s *Structure[E]) Relations() []Relation[E] {
	return slices.Clone(s.relations)
}

func (s *Structure[E]) Relation(i int) Relation[E] {
	return s.relations[i]
}

// RankedTuples returns the tuples of relation i with every element replaced
// by its rank. The result must not be modified.
func (s *Structure[E]) RankedTuples(i int) [][]int {
	return s.ranked[i]
}

func (s *Structure[E]) Signature() Signature {
	sig := make(Signature, len(s.relations))
	for i, r := range s.relations {
		sig[i] = r.arity
	}
	return sig
}

func (s *Structure[E]) String() string {
	rels := make([]string, len(s.relations))
	for i, r := range s.relations {
		rels[i] = r.String()
	}
	return fmt.Sprintf("(%v; %s)", s.universe, strings.Join(rels, ", "))
}

func rankKey(ranks []int) string {
	var b strings.Builder
	for i, r := range ranks {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(r))
	}
	return b.String()
}
