package translate

import (
	"fmt"
	"math"
	"sort"

	"polinv/algebra"
)

// Family tells the two kinds of atoms apart.
type Family int

const (
	// FunctionValue atoms state op(inputs) = output over the universes.
	FunctionValue Family = iota
	// RelationTuple atoms state that op maps a sequence of tuples of a
	// relation of A to a tuple of the same relation of B.
	RelationTuple
)

func (f Family) String() string {
	if f == FunctionValue {
		return "function-value"
	}
	return "relation-tuple"
}

// Key identifies an atom. For FunctionValue atoms Input holds universe ranks
// of A and Output a universe rank of B; for RelationTuple atoms they are
// tuple ranks within relation Relation of A and B. Relation is -1 for
// FunctionValue atoms.
type Key struct {
	Family    Family
	Operation int
	Relation  int
	Input     []int
	Output    int
}

type block struct {
	family   Family
	op       int
	relation int
	base     int // first id minus one
	inputs   int // number of input choices per position
	outputs  int
	arity    int
	size     int
}

// Allocator numbers atoms by closed-form offsets. Blocks are laid out per
// operation in order: function-value atoms, then relation-tuple atoms of
// every relation in structure order. Within a block an atom's offset is
// rank(inputs)*outputs + output, inputs read as a number in base inputs.
type Allocator struct {
	ops    []algebra.Operation
	blocks []block
	fv     []int   // index into blocks of op's function-value block
	rt     [][]int // rt[op][rel] index into blocks
	total  int
}

// TooLargeError is returned when the instance would need more variables than
// a solver can address.
type TooLargeError struct {
	Operation algebra.Operation
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("too many variables for operation %s", e.Operation)
}

// NewAllocator lays out the atoms of ops given the universe sizes of A and B
// and the sizes of their relations.
func NewAllocator(ops []algebra.Operation, aSize, bSize int, relA, relB []int) (*Allocator, error) {
	al := &Allocator{
		ops: ops,
		fv:  make([]int, len(ops)),
		rt:  make([][]int, len(ops)),
	}
	add := func(b block) error {
		size, ok := blockSize(b.inputs, b.arity, b.outputs)
		if !ok || al.total > math.MaxInt32-size {
			return &TooLargeError{Operation: ops[b.op]}
		}
		b.size = size
		b.base = al.total
		al.total += size
		al.blocks = append(al.blocks, b)
		return nil
	}
	for k, op := range ops {
		al.fv[k] = len(al.blocks)
		if err := add(block{family: FunctionValue, op: k, relation: -1, inputs: aSize, outputs: bSize, arity: op.Arity}); err != nil {
			return nil, err
		}
		al.rt[k] = make([]int, len(relA))
		for r := range relA {
			al.rt[k][r] = len(al.blocks)
			if err := add(block{family: RelationTuple, op: k, relation: r, inputs: relA[r], outputs: relB[r], arity: op.Arity}); err != nil {
				return nil, err
			}
		}
	}
	return al, nil
}

func blockSize(inputs, arity, outputs int) (int, bool) {
	size := outputs
	for i := 0; i < arity; i++ {
		if size != 0 && inputs > math.MaxInt32/size {
			return 0, false
		}
		size *= inputs
	}
	return size, size <= math.MaxInt32
}

// NumVars is the number of allocated ids; they are exactly 1..NumVars.
func (al *Allocator) NumVars() int {
	return al.total
}

func (al *Allocator) Operations() []algebra.Operation {
	return al.ops
}

func (b *block) id(input []int, output int) int {
	r := 0
	for _, x := range input {
		r = r*b.inputs + x
	}
	return b.base + r*b.outputs + output + 1
}

// FunctionValue returns the id of op(input) = output.
func (al *Allocator) FunctionValue(op int, input []int, output int) int {
	return al.blocks[al.fv[op]].id(input, output)
}

// RelationTuple returns the id of the atom stating that op maps the tuples
// of relation rel of A ranked inputs to the tuple of B ranked output.
func (al *Allocator) RelationTuple(op, rel int, inputs []int, output int) int {
	return al.blocks[al.rt[op][rel]].id(inputs, output)
}

// Lookup inverts the numbering.
func (al *Allocator) Lookup(id int) (Key, bool) {
	if id < 1 || id > al.total {
		return Key{}, false
	}
	off := id - 1
	i := sort.Search(len(al.blocks), func(i int) bool {
		return al.blocks[i].base+al.blocks[i].size > off
	})
	b := al.blocks[i]
	off -= b.base
	key := Key{
		Family:    b.family,
		Operation: b.op,
		Relation:  b.relation,
		Input:     make([]int, b.arity),
		Output:    off % b.outputs,
	}
	r := off / b.outputs
	for j := b.arity - 1; j >= 0; j-- {
		key.Input[j] = r % b.inputs
		r /= b.inputs
	}
	return key, true
}
