package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/patch"
	"github.com/signadot/go-rich/rich"

	"github.com/scott-cotton/cli"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: -p is required", cli.ErrUsage)
	}
	d, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("could not read patch: %w", err)
	}
	apply := patch.Apply
	if cfg.Merge {
		apply = patch.ApplyMerge
	}
	opts := cfg.encOpts(cc.Out)
	return cfg.eachDoc(cc, args, func(name string, r rich.Rich[*ir.Node, rich.Meta]) error {
		res, err := apply(r, d, cfg.parseOpts()...)
		if err != nil && !errors.Is(err, rich.ErrShapeMismatch) {
			return fmt.Errorf("error patching %s: %w", name, err)
		}
		if err != nil {
			theLog.Warn("patch changed the shape, metadata dropped", "file", name, "error", err)
		}
		if err := encode.Encode(res.Value, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", name, err)
		}
		if !cfg.Meta || err != nil {
			return nil
		}
		return encode.EncodeMeta(res.Meta, cc.Out, opts...)
	})
}
