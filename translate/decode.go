package translate

import (
	"fmt"

	"polinv/algebra"
	"polinv/relational"
)

// DecodeError reports an input tuple for which the model does not pick
// exactly one value.
type DecodeError struct {
	Operation algebra.Operation
	Input     []int
	Values    int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("model assigns %d values to %s at input ranks %v", e.Values, e.Operation.Name, e.Input)
}

// Table is the value table of one operation from A^arity to B.
type Table[E comparable] struct {
	Op     algebra.Operation
	a, b   *relational.Structure[E]
	values []int // B rank per input rank
}

// Row is one line of a table.
type Row[E comparable] struct {
	Args  []E
	Value E
}

// At returns op(args...). It fails for arguments outside A or of the wrong
// number.
func (tab *Table[E]) At(args ...E) (E, bool) {
	var zero E
	if len(args) != tab.Op.Arity {
		return zero, false
	}
	r := 0
	for _, x := range args {
		i, ok := tab.a.Rank(x)
		if !ok {
			return zero, false
		}
		r = r*tab.a.Size() + i
	}
	return tab.b.Element(tab.values[r]), true
}

func (tab *Table[E]) Len() int {
	return len(tab.values)
}

// Rows lists the table in lexicographic order of argument ranks.
func (tab *Table[E]) Rows() []Row[E] {
	rows := make([]Row[E], 0, len(tab.values))
	i := 0
	for input := range algebra.Power(tab.a.Size(), tab.Op.Arity) {
		args := make([]E, len(input))
		for j, r := range input {
			args[j] = tab.a.Element(r)
		}
		rows = append(rows, Row[E]{Args: args, Value: tab.b.Element(tab.values[i])})
		i++
	}
	return rows
}

// Decode reads one table per operation from model, where model[i] is the
// signed value of variable i+1.
func (t *Translator[E]) Decode(model []int) (map[string]*Table[E], error) {
	if len(model) < t.alloc.NumVars() {
		return nil, fmt.Errorf("model has %d values, need %d", len(model), t.alloc.NumVars())
	}
	tables := make(map[string]*Table[E], len(t.alloc.ops))
	m := t.b.Size()
	for k, op := range t.alloc.ops {
		tab := &Table[E]{
			Op:     op,
			a:      t.a,
			b:      t.b,
			values: make([]int, 0, algebra.Pow(t.a.Size(), op.Arity)),
		}
		for input := range algebra.Power(t.a.Size(), op.Arity) {
			value, count := -1, 0
			for out := 0; out < m; out++ {
				if model[t.alloc.FunctionValue(k, input, out)-1] > 0 {
					if count == 0 {
						value = out
					}
					count++
				}
			}
			if count != 1 {
				return nil, &DecodeError{Operation: op, Input: append([]int(nil), input...), Values: count}
			}
			tab.values = append(tab.values, value)
		}
		tables[op.Name] = tab
	}
	return tables, nil
}

// Literals encodes tab back into the ids of its true function-value atoms,
// in row order.
func (t *Translator[E]) Literals(tab *Table[E]) []int {
	k := t.opIndex[tab.Op]
	ids := make([]int, 0, len(tab.values))
	i := 0
	for input := range algebra.Power(t.a.Size(), tab.Op.Arity) {
		ids = append(ids, t.alloc.FunctionValue(k, input, tab.values[i]))
		i++
	}
	return ids
}
