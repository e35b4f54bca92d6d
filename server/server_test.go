package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, body string) (int, Response) {
	t.Helper()
	srv := httptest.NewServer(NewHandler())
	defer srv.Close()
	resp, err := http.Post(srv.URL+"/polymorphisms", "application/yaml", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestSolved(t *testing.T) {
	status, out := post(t, `
a:
  universe: [0, 1]
  relations:
    - tuples: [[0, 0], [1, 1]]
identities: ["t(x,y) = t(y,x)"]
`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, SolvedStage, out.Stage)
	assert.True(t, out.Satisfiable)
	require.Len(t, out.Operations["t"], 4)
	assert.Equal(t, []string{"0", "1"}, out.Operations["t"][1].Args)
	assert.Equal(t, out.Operations["t"][1].Value, out.Operations["t"][2].Value)
	assert.Equal(t, "gini", out.Solver)
	assert.Positive(t, out.Variables)
}

func TestUnsatisfiable(t *testing.T) {
	status, out := post(t, `{"a": {"universe": [0, 1], "relations": [{"tuples": [[0, 1], [1, 0]]}]},
"identities": ["t(x,y) = t(y,x)"], "solver": "gophersat"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, SolvedStage, out.Stage)
	assert.False(t, out.Satisfiable)
	assert.Empty(t, out.Operations)
}

func TestErrors(t *testing.T) {
	type testcase struct {
		body   string
		status int
		stage  string
	}
	cases := []testcase{
		{"a: [unclosed", http.StatusBadRequest, ParsingStage},
		{"a: {universe: [0], relations: [{tuples: [[1]]}]}", http.StatusBadRequest, BuildingStage},
		{"a: {universe: [0], relations: [{tuples: [[0]]}]}\nb: {universe: [0]}", http.StatusBadRequest, SolvingStage},
		{"a: {universe: [0]}\nidentities: ['t(x) = t(x)']\nsolver: nope", http.StatusInternalServerError, SolvingStage},
	}
	for _, tc := range cases {
		status, out := post(t, tc.body)
		assert.Equal(t, tc.status, status, tc.body)
		assert.Equal(t, tc.stage, out.Stage, tc.body)
		assert.NotEmpty(t, out.Error, tc.body)
	}
}

func TestMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/polymorphisms", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/polymorphisms", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
