// Package problem reads polymorphism queries from YAML or JSON documents.
//
//	a:
//	  universe: [0, 1]
//	  relations:
//	    - name: le
//	      tuples: [[0, 0], [0, 1], [1, 1]]
//	identities:
//	  - t(x,y) = t(y,x)
//	solver: gini
//
// b defaults to a. Elements are compared by their printed form.
package problem

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"polinv/algebra"
	"polinv/relational"
	"polinv/syntax"
	"polinv/translate"
)

type RelationInput struct {
	Name   string  `json:"name" yaml:"name"`
	Arity  *int    `json:"arity,omitempty" yaml:"arity,omitempty"`
	Tuples [][]any `json:"tuples" yaml:"tuples"`
}

type StructureInput struct {
	Universe  []any           `json:"universe" yaml:"universe"`
	Relations []RelationInput `json:"relations" yaml:"relations"`
}

type Input struct {
	A          StructureInput  `json:"a" yaml:"a"`
	B          *StructureInput `json:"b,omitempty" yaml:"b,omitempty"`
	Identities []string        `json:"identities" yaml:"identities"`
	Operations map[string]int  `json:"operations,omitempty" yaml:"operations,omitempty"`
	Solver     string          `json:"solver,omitempty" yaml:"solver,omitempty"`
	Workers    int             `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// Problem is a validated query.
type Problem struct {
	A, B       *relational.Structure[string]
	Identities []algebra.Identity
	Options    translate.Options
}

// Decode parses a YAML document; JSON documents are accepted as YAML.
func Decode(data []byte) (*Input, error) {
	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	in, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return in, nil
}

// Build validates the structures and parses the identities.
func (in *Input) Build() (*Problem, error) {
	a, err := in.A.Build()
	if err != nil {
		return nil, fmt.Errorf("structure a: %w", err)
	}
	b := a
	if in.B != nil {
		b, err = in.B.Build()
		if err != nil {
			return nil, fmt.Errorf("structure b: %w", err)
		}
	}
	declared := make([]algebra.Operation, 0, len(in.Operations))
	for name, arity := range in.Operations {
		declared = append(declared, algebra.NewOperation(name, arity))
	}
	ids, err := syntax.ParseAll(in.Identities, declared...)
	if err != nil {
		return nil, fmt.Errorf("identities: %w", err)
	}
	return &Problem{
		A:          a,
		B:          b,
		Identities: ids,
		Options:    translate.Options{Solver: in.Solver, Workers: in.Workers},
	}, nil
}

// Build turns the input into a structure. A relation without tuples or
// declared arity is unary.
func (s StructureInput) Build() (*relational.Structure[string], error) {
	universe := elements(s.Universe)
	rels := make([]relational.Relation[string], len(s.Relations))
	for i, r := range s.Relations {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("R%d", i)
		}
		tuples := make([][]string, len(r.Tuples))
		for j, t := range r.Tuples {
			tuples[j] = elements(t)
		}
		var err error
		switch {
		case r.Arity != nil:
			rels[i], err = relational.NewRelationOfArity(name, *r.Arity, tuples)
		case len(tuples) == 0:
			rels[i], err = relational.NewRelationOfArity[string](name, 1, nil)
		default:
			rels[i], err = relational.NewRelation(name, tuples)
		}
		if err != nil {
			return nil, err
		}
	}
	return relational.New(universe, rels...)
}

func elements(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = fmt.Sprint(v)
	}
	return out
}
