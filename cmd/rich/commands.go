package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "rich").
		WithSynopsis("rich [opts] command [opts]").
		WithDescription("rich shows where the values of json and yaml documents come from.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return richMain(cfg, cc, args)
		}).
		WithSubs(
			MetaCommand(cfg),
			ViewCommand(cfg),
			PatchCommand(cfg))
}

func MetaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MetaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Meta, "meta").
		WithAliases("m").
		WithSynopsis("meta [-k] [-where expr] [files]").
		WithDescription(metaDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return meta(cfg, cc, args)
		})
}

const metaDescription = `meta lists the id and location of every value, one per line.

The -where option filters the list with an expression over the fields
path, id, line, col, kind, key, variant and source, for example

  rich meta -where 'line > 10 && !key' doc.json`

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view documents, optionally converting between json and yaml").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] -p <patchfile> [files]").
		WithDescription("apply a json patch, keeping the ids and locations of the patched documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchCmd(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}
