package algebra

import "fmt"

type ArityMismatchError struct {
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("expected arity %d, but got arity %d", e.Expected, e.Got)
}

// EquationConditionError is returned when a term is equated with something
// that is not a term.
type EquationConditionError struct {
	Got string
}

func (e *EquationConditionError) Error() string {
	return fmt.Sprintf("cannot form equational identity with height 1 term on one side and type %s on the other side", e.Got)
}
