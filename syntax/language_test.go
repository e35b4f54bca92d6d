package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polinv/algebra"
)

func TestParse(t *testing.T) {
	type testcase struct {
		input  string
		expect []string
	}
	cases := []testcase{
		{"t(x,y) = t(y,x)", []string{"t(x,y) = t(y,x)"}},
		{"t(x,x,y)=t(y,x,x) & t(x,y,y) = t(y,y,x)", []string{"t(x,x,y) = t(y,x,x)", "t(x,y,y) = t(y,y,x)"}},
		{"m(x,x,y) = m(x,y,x); m(x,y,x) = m(y,x,x);", []string{"m(x,x,y) = m(x,y,x)", "m(x,y,x) = m(y,x,x)"}},
		{"s(x, y) = t(y)\n t(x) = s(x, x)", []string{"s(x,y) = t(y)", "t(x) = s(x,x)"}},
		{"c = c()", []string{"c = c"}},
		{"f(x') = f(x_1)", []string{"f(x') = f(x_1)"}},
		{"", []string{}},
	}

	for _, tc := range cases {
		ids, err := Parse(tc.input)
		require.NoError(t, err, tc.input)
		output := make([]string, len(ids))
		for i, id := range ids {
			output[i] = id.String()
		}
		assert.Equal(t, tc.expect, output, "Output should equal expected")
	}
}

func TestParseArity(t *testing.T) {
	ids, err := Parse("s(x,y) = t(y,x,x) & t(x,y,z) = s(z,z)")
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, algebra.NewOperation("t", 3), ids[0].RHS.Op)
	assert.Equal(t, ids[0].RHS.Op, ids[1].LHS.Op)

	_, err = Parse("t(x,y) = t(x)")
	var mismatch *algebra.ArityMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Got)
	assert.Contains(t, err.Error(), "1:10")

	_, err = Parse("t(x) = t(y)", algebra.NewOperation("t", 2))
	require.ErrorAs(t, err, &mismatch)
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"t(x,y)",
		"t(x,y) =",
		"t(x,y = t(y,x)",
		"t(x,y) == t(y,x)",
		"t(x,y) = t(y,x) + 1",
	} {
		_, err := Parse(input)
		assert.Error(t, err, input)
	}
}

func TestParseAll(t *testing.T) {
	ids, err := ParseAll([]string{"t(x,y) = t(y,x)", "t(x,x) = s(x)"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = ParseAll([]string{"t(x,y) = t(y,x)", "t(x) = s(x)"})
	var mismatch *algebra.ArityMismatchError
	require.ErrorAs(t, err, &mismatch)
}
