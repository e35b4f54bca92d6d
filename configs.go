package main

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"polinv/problem"
)

type MainConfig struct {
	V     int  `cli:"name=v desc='log verbosity'"`
	Color bool `cli:"name=color desc='colour output even when not a terminal'"`

	Main *cli.Command
}

// setupLogging hands the verbosity to glog, which only reads its own flags.
func (cfg *MainConfig) setupLogging() error {
	if err := flag.Set("logtostderr", "true"); err != nil {
		return err
	}
	return flag.Set("v", strconv.Itoa(cfg.V))
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type SolveConfig struct {
	*MainConfig

	Solver     string `cli:"name=solver desc='gini, gophersat, cadical, kissat, glucose or external:<cmd>'"`
	Workers    int    `cli:"name=workers desc='clause generation workers'"`
	Identities string `cli:"name=e desc='identities, replacing those of the problem file'"`
	Solve      *cli.Command
}

type DimacsConfig struct {
	*MainConfig

	Workers    int    `cli:"name=workers desc='clause generation workers'"`
	Identities string `cli:"name=e desc='identities, replacing those of the problem file'"`
	Out        string `cli:"name=o desc='output file (default stdout)'"`
	Dimacs     *cli.Command
}

// loadProblem reads a problem file and applies command line overrides.
func loadProblem(path, identities, solver string, workers int) (*problem.Problem, error) {
	in, err := problem.Load(path)
	if err != nil {
		return nil, err
	}
	if identities != "" {
		in.Identities = []string{identities}
	}
	if solver != "" {
		in.Solver = solver
	}
	if workers != 0 {
		in.Workers = workers
	}
	return in.Build()
}

type ServeConfig struct {
	*MainConfig

	Addr  string `cli:"name=addr desc='listen address' default=localhost:8080"`
	Serve *cli.Command
}

func statusString(sat bool) string {
	if sat {
		return color.GreenString("SATISFIABLE")
	}
	return color.RedString("UNSATISFIABLE")
}
