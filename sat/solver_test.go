package sat

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polinv/cnf"
)

// (¬x ∨ ¬y) ∧ (¬y ∨ z) ∧ (x ∨ ¬z ∨ y) ∧ y has the single model -1 2 3.
var small = cnf.FromClauses(3, []cnf.Clause{{-1, -2}, {-2, 3}, {1, -3, 2}, {2}})

var contradiction = cnf.FromClauses(1, []cnf.Clause{{1}, {-1}})

func TestInProcess(t *testing.T) {
	for _, name := range []string{"gini", "gophersat", "g3", ""} {
		s, err := Open(name)
		require.NoError(t, err)

		model, err := s.Solve(context.Background(), small)
		require.NoError(t, err, name)
		assert.Equal(t, []int{-1, 2, 3}, model, name)

		model, err = s.Solve(context.Background(), contradiction)
		require.NoError(t, err, name)
		assert.Nil(t, model, name)

		model, err = s.Solve(context.Background(), cnf.FromClauses(2, []cnf.Clause{{1, 2}, {}}))
		require.NoError(t, err, name)
		assert.Nil(t, model, name)

		// tautologies are harmless
		model, err = s.Solve(context.Background(), cnf.FromClauses(2, []cnf.Clause{{1, -1}, {2}, {2, -2}}))
		require.NoError(t, err, name)
		require.Len(t, model, 2, name)
		assert.Equal(t, 2, model[1], name)
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, name := range []string{"gini", "gophersat"} {
		s, err := Open(name)
		require.NoError(t, err)
		_, err = s.Solve(ctx, small)
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestOpen(t *testing.T) {
	type testcase struct {
		name string
		path string
		args []string
	}
	cases := []testcase{
		{"cadical", "cadical", []string{"-q"}},
		{"kissat", "kissat", []string{"-q"}},
		{"external:/opt/bin/glucose -model", "/opt/bin/glucose", []string{"-model"}},
	}
	for _, tc := range cases {
		s, err := Open(tc.name)
		require.NoError(t, err)
		ext, ok := s.(*ExternalSolver)
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.path, ext.Path)
		assert.Equal(t, tc.args, ext.Args)
	}

	for _, name := range []string{"minisat2", "external:", "external:   "} {
		_, err := Open(name)
		var unknown *UnknownSolverError
		assert.ErrorAs(t, err, &unknown, name)
	}
}

// fakeSolver writes a shell script that consumes its input and replies like
// a competition solver.
func fakeSolver(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	script := "#!/bin/sh\ncat > /dev/null\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExternal(t *testing.T) {
	type testcase struct {
		body  string
		model []int
		err   bool
	}
	cases := []testcase{
		{"echo 's SATISFIABLE'\necho 'v -1 2'\necho 'v 3 0'\nexit 10", []int{-1, 2, 3}, false},
		{"echo 's UNSATISFIABLE'\nexit 20", nil, false},
		{"echo 'v 2 0'\nexit 10", []int{-1, 2, -3}, false},
		{"echo oops >&2\nexit 1", nil, true},
		{"echo 'v 9 0'\nexit 10", nil, true},
		{"echo 'c nothing here'\nexit 10", nil, true},
		{"exit 10", nil, true},
	}
	for _, tc := range cases {
		s := NewExternalSolver(fakeSolver(t, tc.body))
		model, err := s.Solve(context.Background(), small)
		if tc.err {
			assert.Error(t, err, tc.body)
			continue
		}
		require.NoError(t, err, tc.body)
		assert.Equal(t, tc.model, model, tc.body)
	}
}

func TestExternalReadsDIMACS(t *testing.T) {
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	out := filepath.Join(dir, "input.cnf")
	path := filepath.Join(dir, "solver.sh")
	script := "#!/bin/sh\ncat > " + out + "\nexit 20\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	model, err := NewExternalSolver(path).Solve(context.Background(), small)
	require.NoError(t, err)
	assert.Nil(t, model)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "p cnf 3 4\n-1 -2 0\n-2 3 0\n1 -3 2 0\n2 0\n", string(got))
}

func TestExternalMissing(t *testing.T) {
	_, err := NewExternalSolver(filepath.Join(t.TempDir(), "absent")).Solve(context.Background(), small)
	assert.Error(t, err)
}
