package main

import (
	"fmt"

	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"

	"github.com/scott-cotton/cli"
)

func meta(cfg *MetaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Meta.Parse(cc, args)
	if err != nil {
		return err
	}
	var where *filter
	if cfg.Where != "" {
		where, err = compileFilter(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: -where: %w", cli.ErrUsage, err)
		}
	}
	opts := append(cfg.encOpts(cc.Out), encode.EncodeKeys(!cfg.NoKeys))
	return cfg.eachDoc(cc, args, func(name string, r rich.Rich[*ir.Node, rich.Meta]) error {
		as := rich.Annotations(r.Meta)
		if where != nil {
			as, err = where.apply(as)
			if err != nil {
				return fmt.Errorf("error filtering %s: %w", name, err)
			}
		}
		return encode.EncodeAnnotations(as, cc.Out, opts...)
	})
}
