package build

import (
	"github.com/signadot/go-rich/rich"
	"github.com/signadot/go-rich/schema"
)

type BuildOption func(*buildOpts)

type buildOpts struct {
	scope   *rich.Scope
	shape   schema.Shape
	source  string
	keyMeta bool
}

// WithScope sets the scope identifiers are drawn from. By default each
// Builder uses a fresh scope.
func WithScope(s *rich.Scope) BuildOption {
	return func(o *buildOpts) { o.scope = s }
}

// WithShape sets the expected shape of the document (default schema.Any()).
func WithShape(s schema.Shape) BuildOption {
	return func(o *buildOpts) { o.shape = s }
}

// WithSource names the document in locations.
func WithSource(name string) BuildOption {
	return func(o *buildOpts) { o.source = name }
}

// WithKeyMeta controls whether map keys get their own mark (default true).
func WithKeyMeta(v bool) BuildOption {
	return func(o *buildOpts) { o.keyMeta = v }
}

func newOpts(opts []BuildOption) *buildOpts {
	o := &buildOpts{keyMeta: true}
	for _, opt := range opts {
		opt(o)
	}
	if o.scope == nil {
		o.scope = rich.NewScope()
	}
	if o.shape == nil {
		o.shape = schema.Any()
	}
	return o
}
