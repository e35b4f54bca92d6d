package relational

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutOfUniverse(t *testing.T) {
	_, err := FromLists([]int{0, 1}, [][][]int{{{0, 2}}}, 1)
	var out *RelationOutOfUniverseError
	require.ErrorAs(t, err, &out)
	assert.Equal(t, 2, out.Element)
	assert.Equal(t, "element 2 does not belong in universe [0 1]", err.Error())
}

func TestArityMismatch(t *testing.T) {
	// Arity consistency is checked before universe membership.
	_, err := FromLists([]int{0, 1}, [][][]int{{{0, 1}}, {{0}, {5, 5}}}, 1)
	var mismatch *RelationArityMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, mismatch.Relation, "R1")

	_, err = NewRelationOfArity("le", 2, [][]int{{0, 1}, {0}})
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "le[[0 1] [0]]", mismatch.Relation)
}

func TestEmptyRelation(t *testing.T) {
	_, err := NewRelation[int]("empty", nil)
	var missing *MissingArityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "empty", missing.Relation)

	_, err = FromLists([]int{0}, [][][]int{{}}, -1)
	require.ErrorAs(t, err, &missing)

	s, err := FromLists([]int{0}, [][][]int{{}}, 1)
	require.NoError(t, err)
	assert.Equal(t, Signature{1}, s.Signature())
	assert.Equal(t, 0, s.Relation(0).Len())

	s, err = FromLists([]int{0}, [][][]int{{}, {{0, 0, 0}}}, 4)
	require.NoError(t, err)
	assert.Equal(t, Signature{4, 3}, s.Signature())
}

func TestStructure(t *testing.T) {
	le, err := NewRelation("le", [][]string{{"a", "a"}, {"a", "b"}, {"b", "b"}, {"a", "b"}})
	require.NoError(t, err)
	unary, err := NewRelation("u", [][]string{{"b"}})
	require.NoError(t, err)

	s, err := New([]string{"a", "b"}, le, unary)
	require.NoError(t, err)

	assert.Equal(t, Signature{2, 1}, s.Signature())
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, "b", s.Element(1))
	r, ok := s.Rank("b")
	assert.True(t, ok)
	assert.Equal(t, 1, r)
	_, ok = s.Rank("c")
	assert.False(t, ok)

	// the duplicate (a,b) is dropped
	assert.Equal(t, 3, s.Relation(0).Len())
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {1, 1}}, s.RankedTuples(0))
	assert.Equal(t, [][]int{{1}}, s.RankedTuples(1))
	assert.Equal(t, [][]string{{"a", "a"}, {"a", "b"}, {"b", "b"}}, s.Relation(0).Tuples())

	_, err = New([]string{"a", "a"})
	var dup *DuplicateElementError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Element)
}

func TestSignatureEqual(t *testing.T) {
	type testcase struct {
		a, b  Signature
		equal bool
	}
	cases := []testcase{
		{Signature{2, 1}, Signature{2, 1}, true},
		{Signature{2, 1}, Signature{1, 1}, false},
		{Signature{2, 1}, Signature{1, 2}, false},
		{Signature{2}, Signature{2, 2}, false},
		{Signature{}, nil, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.equal, tc.a.Equal(tc.b), "%v == %v", tc.a, tc.b)
	}
}
