package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	log "github.com/golang/glog"

	"polinv/cnf"
)

// Exit codes of the SAT competition convention.
const (
	exitSat   = 10
	exitUnsat = 20
)

// ExternalSolver runs a solver program, streaming the instance to its
// standard input in DIMACS format and reading the model from its "v" lines.
type ExternalSolver struct {
	Path string
	Args []string
}

func NewExternalSolver(path string, args ...string) *ExternalSolver {
	return &ExternalSolver{Path: path, Args: args}
}

func (s *ExternalSolver) Solve(ctx context.Context, inst cnf.Instance) ([]int, error) {
	cmd := exec.CommandContext(ctx, s.Path, s.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("could not start %s: %w", s.Path, err)
	}

	written := make(chan error, 1)
	go func() {
		err := cnf.WriteDIMACS(stdin, inst)
		if cerr := stdin.Close(); err == nil {
			err = cerr
		}
		written <- err
	}()

	err = cmd.Wait()
	werr := <-written
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	code := cmd.ProcessState.ExitCode()
	if stderr.Len() > 0 {
		log.Warningf("%s: %s", s.Path, bytes.TrimSpace(stderr.Bytes()))
	}
	switch code {
	case exitUnsat:
		return nil, nil
	case exitSat:
		if werr != nil {
			// the solver answered before reading everything
			return nil, fmt.Errorf("%s exited while the instance was being written: %w", s.Path, werr)
		}
		model, status, perr := cnf.ParseModel(&stdout, inst.NumVars)
		if perr != nil {
			return nil, fmt.Errorf("reading %s output: %w", s.Path, perr)
		}
		switch {
		case status == cnf.Unsatisfiable:
			return nil, nil
		case status == cnf.Unknown && inst.NumVars > 0:
			// neither an "s" nor a "v" line
			return nil, fmt.Errorf("%s exited with code %d but printed no model", s.Path, exitSat)
		}
		return model, nil
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, err
	}
	return nil, fmt.Errorf("an error occurred during %s execution: exit code %d: %s", s.Path, code, stderr.String())
}
