package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "polinv").
		WithSynopsis("polinv [opts] command [opts]").
		WithDescription("polinv searches for polymorphisms satisfying identities with a SAT solver.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return polinvMain(cfg, cc, args)
		}).
		WithSubs(
			SolveCommand(cfg),
			DimacsCommand(cfg),
			ServeCommand(cfg))
}

func SolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SolveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Solve, "solve").
		WithAliases("s").
		WithSynopsis("solve [opts] <problem>").
		WithDescription("find polymorphisms for a problem file and print their tables").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return solve(cfg, cc, args)
		})
}

func DimacsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DimacsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dimacs, "dimacs").
		WithAliases("d").
		WithSynopsis("dimacs [-o file] <problem>").
		WithDescription("write the CNF instance of a problem file in DIMACS format").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dimacs(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Addr: "localhost:8080"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-addr <addr>]").
		WithDescription("answer POST /polymorphisms requests over HTTP").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
