package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteDIMACS streams inst in DIMACS CNF format. The header uses
// inst.NumClauses, which must be accurate.
func WriteDIMACS(w io.Writer, inst Instance) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", inst.NumVars, inst.NumClauses); err != nil {
		return err
	}
	var buf []byte
	for c := range inst.Clauses {
		buf = buf[:0]
		for _, lit := range c {
			buf = strconv.AppendInt(buf, int64(lit), 10)
			buf = append(buf, ' ')
		}
		buf = append(buf, '0', '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Status is the verdict a solver prints on its "s" line.
type Status int

const (
	Unknown Status = iota
	Satisfiable
	Unsatisfiable
)

// ParseModel reads solver output in the SAT competition format. The model
// may be spread over several "v" lines and is terminated by 0. Variables
// the solver does not mention are reported false. The returned slice has
// length numVars, entry i holding +(i+1) or -(i+1).
func ParseModel(r io.Reader, numVars int) ([]int, Status, error) {
	model := make([]int, numVars)
	for i := range model {
		model[i] = -(i + 1)
	}
	status := Unknown
	seen := false
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<26)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "s "):
			switch strings.TrimSpace(line[2:]) {
			case "SATISFIABLE":
				status = Satisfiable
			case "UNSATISFIABLE":
				status = Unsatisfiable
			}
		case line == "v" || strings.HasPrefix(line, "v "):
			seen = true
			for _, f := range strings.Fields(line[1:]) {
				lit, err := strconv.Atoi(f)
				if err != nil {
					return nil, status, fmt.Errorf("bad literal %q in model line", f)
				}
				if lit == 0 {
					continue
				}
				v := lit
				if v < 0 {
					v = -v
				}
				if v > numVars {
					return nil, status, fmt.Errorf("literal %d out of range 1..%d", lit, numVars)
				}
				model[v-1] = lit
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, status, err
	}
	if status == Satisfiable && !seen && numVars > 0 {
		return nil, status, fmt.Errorf("solver reported SATISFIABLE without a model")
	}
	if seen && status == Unknown {
		status = Satisfiable
	}
	return model, status, nil
}
