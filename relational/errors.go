package relational

import "fmt"

type RelationArityMismatchError struct {
	Relation string
}

func (e *RelationArityMismatchError) Error() string {
	return fmt.Sprintf("arity mismatch when creating a relation, the relation was %s", e.Relation)
}

type RelationOutOfUniverseError struct {
	Element  any
	Universe any
}

func (e *RelationOutOfUniverseError) Error() string {
	return fmt.Sprintf("element %v does not belong in universe %v", e.Element, e.Universe)
}

// MissingArityError is returned for an empty relation built without a
// declared arity.
type MissingArityError struct {
	Relation string
}

func (e *MissingArityError) Error() string {
	if e.Relation == "" {
		return "arity is missing for an empty relation"
	}
	return fmt.Sprintf("arity is missing for the empty relation %s", e.Relation)
}

type DuplicateElementError struct {
	Element any
}

func (e *DuplicateElementError) Error() string {
	return fmt.Sprintf("element %v occurs twice in the universe", e.Element)
}
