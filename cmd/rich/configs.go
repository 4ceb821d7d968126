package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/format"
	"github.com/signadot/go-rich/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Gops  bool `cli:"name=gops desc='start a gops agent'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat returns the input format given on the command line, if any.
func (cfg *MainConfig) inFormat() (format.Format, bool) {
	switch {
	case cfg.InFormat != nil:
		return *cfg.InFormat, true
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return 0, false
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if f, ok := cfg.inFormat(); ok {
		return []parse.ParseOption{parse.ParseFormat(f)}
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmt format.Format
	switch {
	case cfg.Y:
		fmt = format.YAMLFormat
	case cfg.J:
		fmt = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type MetaConfig struct {
	*MainConfig

	NoKeys bool   `cli:"name=k desc='leave out the marks of map keys'"`
	Where  string `cli:"name=where desc='only list marks matching an expression'"`

	Meta *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type PatchConfig struct {
	*MainConfig

	File  string `cli:"name=p desc='file containing the patch'"`
	Merge bool   `cli:"name=m desc='the patch is a json merge patch'"`
	Meta  bool   `cli:"name=meta desc='list the marks of the result'"`

	Patch *cli.Command
}
