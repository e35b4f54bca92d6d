// Package algebra holds operation symbols, height 1 terms and the
// equational identities built from them.
package algebra

import (
	"fmt"
	"strings"
)

// Operation is an operation symbol of a fixed arity. Two operations are the
// same symbol exactly when both name and arity agree.
type Operation struct {
	Name  string
	Arity int
}

func NewOperation(name string, arity int) Operation {
	return Operation{Name: name, Arity: arity}
}

// Apply builds the term op(vars...).
func (op Operation) Apply(vars ...string) (Term, error) {
	if len(vars) != op.Arity {
		return Term{}, &ArityMismatchError{Expected: op.Arity, Got: len(vars)}
	}
	return Term{Op: op, Vars: append([]string(nil), vars...)}, nil
}

// MustApply is like Apply but panics on an arity mismatch.
func (op Operation) MustApply(vars ...string) Term {
	t, err := op.Apply(vars...)
	if err != nil {
		panic(err)
	}
	return t
}

func (op Operation) String() string {
	return fmt.Sprintf("%s/%d", op.Name, op.Arity)
}

// Term is a height 1 term: a single operation applied to variables.
type Term struct {
	Op   Operation
	Vars []string
}

// Eq forms the identity t = other. Only another term may stand on the right
// hand side.
func (t Term) Eq(other any) (Identity, error) {
	switch o := other.(type) {
	case Term:
		return NewIdentity(t, o), nil
	case *Term:
		if o != nil {
			return NewIdentity(t, *o), nil
		}
	}
	return Identity{}, &EquationConditionError{Got: fmt.Sprintf("%T", other)}
}

func (t Term) String() string {
	if len(t.Vars) == 0 {
		return t.Op.Name
	}
	return t.Op.Name + "(" + strings.Join(t.Vars, ",") + ")"
}
