package main

import (
	"fmt"

	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	i := 0
	return cfg.eachDoc(cc, args, func(name string, r rich.Rich[*ir.Node, rich.Meta]) error {
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		i++
		if err := encode.Encode(r.Value, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", name, err)
		}
		return nil
	})
}
