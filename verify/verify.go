// Package verify checks decoded operation tables against the identities and
// relations they were searched for, independently of the SAT encoding.
// Identities are checked by a Prolog interpreter over the tables rendered as
// facts; relation preservation is checked directly.
package verify

import (
	"fmt"
	"strconv"
	"strings"

	"polinv/algebra"
	"polinv/relational"
)

// Table is an operation table as produced by the decoder.
type Table[E comparable] interface {
	At(args ...E) (E, bool)
}

// ViolationError describes the first failed check.
type ViolationError struct {
	Operation string
	Identity  string
	Relation  string
	Witness   string
}

func (e *ViolationError) Error() string {
	switch {
	case e.Identity != "":
		return fmt.Sprintf("identity %s fails at %s", e.Identity, e.Witness)
	case e.Relation != "":
		return fmt.Sprintf("%s does not preserve %s: %s", e.Operation, e.Relation, e.Witness)
	}
	return fmt.Sprintf("%s is not total: %s", e.Operation, e.Witness)
}

type row struct {
	Args  []string
	Value string
}

type opFacts struct {
	Pred      string
	PredArity int
	Rows      []row
}

type identityRule struct {
	Head    string
	Query   string
	Vars    []string
	LHSPred string
	LHSArgs []string
	RHSPred string
	RHSArgs []string
}

// Check verifies that every operation of identities has a total table into
// B, preserves every relation of A into B, and that every identity holds.
func Check[E comparable](a, b *relational.Structure[E], identities []algebra.Identity, tables map[string]Table[E]) error {
	ops := make([]algebra.Operation, 0)
	pred := make(map[algebra.Operation]string)
	for _, id := range identities {
		for _, op := range id.Operations() {
			if _, ok := pred[op]; !ok {
				pred[op] = "op_" + strconv.Itoa(len(ops))
				ops = append(ops, op)
			}
		}
	}

	facts := make([]opFacts, len(ops))
	for k, op := range ops {
		tab, ok := tables[op.Name]
		if !ok {
			return &ViolationError{Operation: op.Name, Witness: "no table"}
		}
		f := opFacts{Pred: pred[op], PredArity: op.Arity + 1}
		args := make([]E, op.Arity)
		for input := range algebra.Power(a.Size(), op.Arity) {
			for j, r := range input {
				args[j] = a.Element(r)
			}
			v, ok := tab.At(args...)
			if !ok {
				return &ViolationError{Operation: op.Name, Witness: fmt.Sprintf("undefined at %v", args)}
			}
			vr, ok := b.Rank(v)
			if !ok {
				return &ViolationError{Operation: op.Name, Witness: fmt.Sprintf("value %v at %v is outside B", v, args)}
			}
			f.Rows = append(f.Rows, row{Args: rankAtoms(aPrefix, input), Value: rankAtom(bPrefix, vr)})
		}
		facts[k] = f
		if err := checkRelations(a, b, op, tab); err != nil {
			return err
		}
	}

	elements := make([]string, a.Size())
	for i := range elements {
		elements[i] = rankAtom(aPrefix, i)
	}
	for i, id := range identities {
		rule := identityRule{
			Head:    "violation_" + strconv.Itoa(i),
			Query:   "violation_" + strconv.Itoa(i),
			LHSPred: pred[id.LHS.Op],
			RHSPred: pred[id.RHS.Op],
		}
		for j := range id.Variables() {
			rule.Vars = append(rule.Vars, "X"+strconv.Itoa(j))
		}
		if len(rule.Vars) > 0 {
			rule.Head += "(" + strings.Join(rule.Vars, ", ") + ")"
			rule.Query = rule.Head
		}
		rule.LHSArgs = prologVars(id, id.LHS)
		rule.RHSArgs = prologVars(id, id.RHS)

		program := TemplateToString(programTemplate, struct {
			Elements   []string
			Ops        []opFacts
			Identities []identityRule
		}{elements, facts, []identityRule{rule}})
		found, bindings, err := NewProlog().ConsultAndQuery1(program, rule.Query+".")
		if err != nil {
			return fmt.Errorf("checking %s: %w", id, err)
		}
		if found {
			witness := make([]string, 0, len(bindings))
			for j, v := range id.Variables() {
				witness = append(witness, v+"="+element(a, bindings["X"+strconv.Itoa(j)]))
			}
			return &ViolationError{Identity: id.String(), Witness: "{" + strings.Join(witness, ", ") + "}"}
		}
	}
	return nil
}

func prologVars(id algebra.Identity, t algebra.Term) []string {
	vars := make([]string, len(t.Vars))
	for i, v := range t.Vars {
		j, _ := id.VariableIndex(v)
		vars[i] = "X" + strconv.Itoa(j)
	}
	return vars
}

// checkRelations applies tab coordinatewise to every choice of op.Arity
// tuples of each relation of A and looks the result up in B.
func checkRelations[E comparable](a, b *relational.Structure[E], op algebra.Operation, tab Table[E]) error {
	for rel := range a.Signature() {
		tuplesA := a.Relation(rel).Tuples()
		width := a.Relation(rel).Arity()
		image := make(map[string]bool, b.Relation(rel).Len())
		for _, tuple := range b.RankedTuples(rel) {
			image[fmt.Sprint(tuple)] = true
		}
		args := make([]E, op.Arity)
		for inputs := range algebra.Power(len(tuplesA), op.Arity) {
			out := make([]int, width)
			for i := 0; i < width; i++ {
				for j, in := range inputs {
					args[j] = tuplesA[in][i]
				}
				v, _ := tab.At(args...)
				out[i], _ = b.Rank(v)
			}
			if !image[fmt.Sprint(out)] {
				chosen := make([][]E, len(inputs))
				for j, in := range inputs {
					chosen[j] = tuplesA[in]
				}
				return &ViolationError{
					Operation: op.Name,
					Relation:  a.Relation(rel).String(),
					Witness:   fmt.Sprintf("%v is not mapped into the relation", chosen),
				}
			}
		}
	}
	return nil
}

// Elements enter the program as atoms naming their rank, so elements that
// print alike stay distinct.
const (
	aPrefix = "a"
	bPrefix = "b"
)

func rankAtom(prefix string, r int) string {
	return prefix + strconv.Itoa(r)
}

func rankAtoms(prefix string, ranks []int) []string {
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = rankAtom(prefix, r)
	}
	return out
}

// element maps an atom of A back to the element it stands for.
func element[E comparable](a *relational.Structure[E], atom string) string {
	r, err := strconv.Atoi(strings.TrimPrefix(atom, aPrefix))
	if err != nil || r < 0 || r >= a.Size() {
		return atom
	}
	return fmt.Sprint(a.Element(r))
}
