package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/golang/glog"
	"github.com/scott-cotton/cli"

	"polinv/cnf"
	"polinv/problem"
	"polinv/server"
	"polinv/translate"
)

func polinvMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setupLogging(); err != nil {
		return err
	}
	defer log.Flush()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func oneFile(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected one problem file, got %d arguments", cli.ErrUsage, len(args))
	}
	return args[0], nil
}

func solve(cfg *SolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Solve.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := oneFile(args)
	if err != nil {
		return err
	}
	p, err := loadProblem(path, cfg.Identities, cfg.Solver, cfg.Workers)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := p.Options
	opts.Verify = true
	res, err := translate.FindPolymorphisms(ctx, p.A, p.B, p.Identities, opts)
	if err != nil {
		return err
	}
	color.NoColor = !cfg.colorize(cc.Out)
	return writeResult(cc.Out, res)
}

// writeResult prints the status line followed by one table per operation,
// operations sorted by name.
func writeResult(w io.Writer, res *translate.Result[string]) error {
	s := res.Stats
	if _, err := fmt.Fprintf(w, "%s (%s, %d variables, %d clauses, %v)\n",
		statusString(res.Satisfiable), s.Solver, s.Variables, s.Clauses, s.Elapsed.Round(time.Microsecond)); err != nil {
		return err
	}
	names := make([]string, 0, len(res.Tables))
	for name := range res.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tab := res.Tables[name]
		if _, err := fmt.Fprintf(w, "%s\n", tab.Op); err != nil {
			return err
		}
		for _, row := range tab.Rows() {
			app := name
			if tab.Op.Arity > 0 {
				app = name + "(" + strings.Join(row.Args, ",") + ")"
			}
			if _, err := fmt.Fprintf(w, "  %s = %s\n", app, row.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func dimacs(cfg *DimacsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dimacs.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := oneFile(args)
	if err != nil {
		return err
	}
	p, err := loadProblem(path, cfg.Identities, "", cfg.Workers)
	if err != nil {
		return err
	}
	if cfg.Out == "" || cfg.Out == "-" {
		return writeInstance(cc.Out, p)
	}
	return writeInstanceFile(cfg.Out, p)
}

func writeInstanceFile(path string, p *problem.Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	if err := writeInstance(f, p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %q: %w", path, err)
	}
	return nil
}

// writeInstance translates p and writes the instance in DIMACS format.
func writeInstance(w io.Writer, p *problem.Problem) error {
	t, err := translate.NewTranslator(p.A, p.B, p.Identities)
	if err != nil {
		return err
	}
	inst := t.Instance()
	if p.Options.Workers > 1 {
		inst = cnf.FromClauses(t.Allocator().NumVars(), t.Collect(p.Options.Workers))
	}
	if err := cnf.WriteDIMACS(w, inst); err != nil {
		return fmt.Errorf("error writing instance: %w", err)
	}
	log.V(1).Infof("wrote %d variables, %d clauses", inst.NumVars, inst.NumClauses)
	return nil
}

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Serve.Parse(cc, args); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "polinv listening on %s\n", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, server.NewHandler())
}
