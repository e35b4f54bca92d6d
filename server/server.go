// Package server exposes polymorphism queries over HTTP. A query is a
// problem document (YAML or JSON) POSTed to /polymorphisms; the answer is
// JSON.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/golang/glog"

	"polinv/problem"
	"polinv/translate"
)

type Row struct {
	Args  []string `json:"args"`
	Value string   `json:"value"`
}

type Response struct {
	Stage       string           `json:"stage"`
	Error       string           `json:"error,omitempty"`
	Satisfiable bool             `json:"satisfiable"`
	Operations  map[string][]Row `json:"operations"`
	Variables   int              `json:"variables"`
	Clauses     int              `json:"clauses"`
	Solver      string           `json:"solver,omitempty"`
	Millis      int64            `json:"millis"`
}

const (
	ParsingStage  = "parse"
	BuildingStage = "build"
	SolvingStage  = "solve"
	SolvedStage   = "solved"
)

// maxBody bounds request documents.
const maxBody = 8 << 20

func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/polymorphisms", polymorphisms)
	return mux
}

func writeResponse(w http.ResponseWriter, status int, response Response) {
	if response.Operations == nil {
		response.Operations = map[string][]Row{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("error encoding response: %v", err)
	}
}

func handleError(w http.ResponseWriter, stage string, status int, err error) {
	writeResponse(w, status, Response{Stage: stage, Error: err.Error()})
}

func polymorphisms(w http.ResponseWriter, r *http.Request) {
	// Allow all origins
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Warningf("error closing body: %v", err)
		}
	}()
	if err != nil {
		handleError(w, ParsingStage, http.StatusRequestEntityTooLarge, err)
		return
	}
	input, err := problem.Decode(body)
	if err != nil {
		handleError(w, ParsingStage, http.StatusBadRequest, err)
		return
	}
	p, err := input.Build()
	if err != nil {
		handleError(w, BuildingStage, http.StatusBadRequest, err)
		return
	}

	opts := p.Options
	opts.Verify = true
	res, err := translate.FindPolymorphisms(r.Context(), p.A, p.B, p.Identities, opts)
	if err != nil {
		status := http.StatusInternalServerError
		var mismatch *translate.SignatureMismatchError
		var conflict *translate.OperationConflictError
		if errors.As(err, &mismatch) || errors.As(err, &conflict) {
			status = http.StatusBadRequest
		}
		handleError(w, SolvingStage, status, err)
		return
	}
	log.V(1).Infof("answered query from %s: satisfiable=%v", r.RemoteAddr, res.Satisfiable)

	response := Response{
		Stage:       SolvedStage,
		Satisfiable: res.Satisfiable,
		Operations:  make(map[string][]Row, len(res.Tables)),
		Variables:   res.Stats.Variables,
		Clauses:     res.Stats.Clauses,
		Solver:      res.Stats.Solver,
		Millis:      res.Stats.Elapsed.Milliseconds(),
	}
	for name, tab := range res.Tables {
		rows := make([]Row, 0, tab.Len())
		for _, row := range tab.Rows() {
			rows = append(rows, Row{Args: row.Args, Value: row.Value})
		}
		response.Operations[name] = rows
	}
	writeResponse(w, http.StatusOK, response)
}
