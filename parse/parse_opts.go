package parse

import (
	"github.com/signadot/go-rich/build"
	"github.com/signadot/go-rich/format"
	"github.com/signadot/go-rich/rich"
	"github.com/signadot/go-rich/schema"
	"github.com/signadot/go-rich/stream"
)

type parseOpts struct {
	format  format.Format
	doc     int
	shape   schema.Shape
	scope   *rich.Scope
	source  string
	keyMeta bool
}

func (o *parseOpts) StreamOpts() []stream.StreamOption {
	return []stream.StreamOption{stream.WithFormat(o.format), stream.WithDocument(o.doc)}
}

func (o *parseOpts) BuildOpts() []build.BuildOption {
	res := []build.BuildOption{
		build.WithSource(o.source),
		build.WithKeyMeta(o.keyMeta),
	}
	if o.shape != nil {
		res = append(res, build.WithShape(o.shape))
	}
	if o.scope != nil {
		res = append(res, build.WithScope(o.scope))
	}
	return res
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseDocument selects the document of a multi-document YAML input.
func ParseDocument(i int) ParseOption {
	return func(o *parseOpts) { o.doc = i }
}
func ParseShape(s schema.Shape) ParseOption {
	return func(o *parseOpts) { o.shape = s }
}

// ParseScope draws identifiers from s, so that several documents share one
// identifier space.
func ParseScope(s *rich.Scope) ParseOption {
	return func(o *parseOpts) { o.scope = s }
}

// ParseSource names the input in locations, typically its file name.
func ParseSource(name string) ParseOption {
	return func(o *parseOpts) { o.source = name }
}
func ParseKeyMeta(v bool) ParseOption {
	return func(o *parseOpts) { o.keyMeta = v }
}

func newParseOpts(opts []ParseOption) *parseOpts {
	res := &parseOpts{format: format.JSONFormat, keyMeta: true}
	for _, f := range opts {
		f(res)
	}
	return res
}
