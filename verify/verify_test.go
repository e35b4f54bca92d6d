package verify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polinv/algebra"
	"polinv/relational"
)

// fn is a table given by a Go function over {0,1,2}.
type fn func(args ...string) (string, bool)

func (f fn) At(args ...string) (string, bool) {
	return f(args...)
}

func chain(t *testing.T) *relational.Structure[string] {
	t.Helper()
	s, err := relational.FromLists([]string{"0", "1", "2"}, [][][]string{
		{{"0", "0"}, {"0", "1"}, {"0", "2"}, {"1", "1"}, {"1", "2"}, {"2", "2"}},
	}, 1)
	require.NoError(t, err)
	return s
}

func binary(f func(x, y string) string) fn {
	return func(args ...string) (string, bool) {
		if len(args) != 2 {
			return "", false
		}
		return f(args[0], args[1]), true
	}
}

func maximum(x, y string) string {
	return max(x, y)
}

var t2 = algebra.NewOperation("t", 2)

func commutative(t *testing.T) []algebra.Identity {
	t.Helper()
	id, err := t2.MustApply("x", "y").Eq(t2.MustApply("y", "x"))
	require.NoError(t, err)
	return []algebra.Identity{id}
}

func TestCheckPasses(t *testing.T) {
	s := chain(t)
	err := Check(s, s, commutative(t), map[string]Table[string]{"t": binary(maximum)})
	assert.NoError(t, err)
}

func TestCheckIdentity(t *testing.T) {
	s := chain(t)
	first := binary(func(x, _ string) string { return x })
	err := Check(s, s, commutative(t), map[string]Table[string]{"t": first})
	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "t(x,y) = t(y,x)", violation.Identity)
	assert.True(t, strings.HasPrefix(violation.Witness, "{x="), violation.Witness)
}

func TestCheckRelation(t *testing.T) {
	s := chain(t)
	// commutative but reverses the order
	flip := binary(func(x, y string) string {
		return map[string]string{"0": "2", "1": "1", "2": "0"}[max(x, y)]
	})
	err := Check(s, s, commutative(t), map[string]Table[string]{"t": flip})
	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "t", violation.Operation)
	assert.Empty(t, violation.Identity)
	assert.NotEmpty(t, violation.Relation)
	assert.Contains(t, err.Error(), "does not preserve")
}

func TestCheckTotal(t *testing.T) {
	s := chain(t)
	type testcase struct {
		tables map[string]Table[string]
		msg    string
	}
	cases := []testcase{
		{map[string]Table[string]{}, "no table"},
		{map[string]Table[string]{"t": fn(func(args ...string) (string, bool) { return "", false })}, "undefined"},
		{map[string]Table[string]{"t": binary(func(x, y string) string { return "7" })}, "outside B"},
	}
	for _, tc := range cases {
		err := Check(s, s, commutative(t), tc.tables)
		var violation *ViolationError
		require.ErrorAs(t, err, &violation, tc.msg)
		assert.Contains(t, violation.Witness, tc.msg)
		assert.Contains(t, err.Error(), "is not total")
	}
}

func TestCheckNullary(t *testing.T) {
	s := chain(t)
	c := algebra.NewOperation("c", 0)
	d := algebra.NewOperation("d", 0)
	id, err := c.MustApply().Eq(d.MustApply())
	require.NoError(t, err)
	constant := func(v string) fn {
		return func(args ...string) (string, bool) { return v, len(args) == 0 }
	}

	err = Check(s, s, []algebra.Identity{id}, map[string]Table[string]{"c": constant("1"), "d": constant("1")})
	assert.NoError(t, err)

	err = Check(s, s, []algebra.Identity{id}, map[string]Table[string]{"c": constant("1"), "d": constant("2")})
	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "c = d", violation.Identity)
	assert.Equal(t, "{}", violation.Witness)
}

func TestCheckOddElements(t *testing.T) {
	s, err := relational.FromLists([]string{"it's", `a\b`, "X"}, nil, 1)
	require.NoError(t, err)
	proj := func(args ...string) (string, bool) {
		if len(args) != 2 {
			return "", false
		}
		if args[0] == args[1] {
			return args[0], true
		}
		return "X", true
	}
	assert.NoError(t, Check(s, s, commutative(t), map[string]Table[string]{"t": fn(proj)}))
}

func TestCheckElementsPrintingAlike(t *testing.T) {
	s, err := relational.New[any]([]any{1, "1"})
	require.NoError(t, err)
	f := algebra.NewOperation("f", 1)
	g := algebra.NewOperation("g", 1)
	id, err := f.MustApply("x").Eq(g.MustApply("x"))
	require.NoError(t, err)
	constant := func(v any) anyFn {
		return func(args ...any) (any, bool) { return v, len(args) == 1 }
	}

	err = Check(s, s, []algebra.Identity{id}, map[string]Table[any]{"f": constant(1), "g": constant("1")})
	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "f(x) = g(x)", violation.Identity)
	assert.Equal(t, "{x=1}", violation.Witness)

	err = Check(s, s, []algebra.Identity{id}, map[string]Table[any]{"f": constant("1"), "g": constant("1")})
	assert.NoError(t, err)
}

type anyFn func(args ...any) (any, bool)

func (f anyFn) At(args ...any) (any, bool) {
	return f(args...)
}
