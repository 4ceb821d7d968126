package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/go-rich/rich"
)

// annotationEnv is the environment of -where expressions.
type annotationEnv struct {
	Path    string `expr:"path"`
	ID      uint64 `expr:"id"`
	Line    int    `expr:"line"`
	Col     int    `expr:"col"`
	Kind    string `expr:"kind"`
	Key     bool   `expr:"key"`
	Variant string `expr:"variant"`
	Source  string `expr:"source"`
}

func envOf(a *rich.Annotation) annotationEnv {
	return annotationEnv{
		Path:    a.Path,
		ID:      uint64(a.Mark.ID),
		Line:    a.Mark.Loc.Line,
		Col:     a.Mark.Loc.Col,
		Kind:    a.Kind.String(),
		Key:     a.Key,
		Variant: a.Variant,
		Source:  a.Mark.Loc.Source,
	}
}

type filter struct {
	prg *vm.Program
}

func compileFilter(src string) (*filter, error) {
	prg, err := expr.Compile(src, expr.Env(annotationEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &filter{prg: prg}, nil
}

func (f *filter) apply(as []rich.Annotation) ([]rich.Annotation, error) {
	var res []rich.Annotation
	for i := range as {
		out, err := expr.Run(f.prg, envOf(&as[i]))
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", as[i].Path, err)
		}
		if ok, _ := out.(bool); ok {
			res = append(res, as[i])
		}
	}
	return res, nil
}
