package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/parse"
	"github.com/signadot/go-rich/rich"

	"github.com/scott-cotton/cli"
)

func richMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			theLog.Warn("gops agent failed", "error", err)
		}
		defer agent.Close()
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

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// eachDoc parses the named files, or standard input if there are none,
// and calls f with each document. All documents share one identifier
// scope.
func (cfg *MainConfig) eachDoc(cc *cli.Context, files []string, f func(name string, r rich.Rich[*ir.Node, rich.Meta]) error) error {
	opts := append([]parse.ParseOption{parse.ParseScope(rich.NewScope())}, cfg.parseOpts()...)
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		var (
			r   rich.Rich[*ir.Node, rich.Meta]
			err error
		)
		if file == "-" {
			r, err = parse.ParseReader(cc.In, append(opts, parse.ParseSource("-"))...)
		} else {
			r, err = parse.ParseFile(file, opts...)
		}
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := f(file, r); err != nil {
			return err
		}
	}
	return nil
}
