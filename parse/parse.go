package parse

import (
	"bytes"
	"io"
	"os"

	"github.com/signadot/go-rich/build"
	"github.com/signadot/go-rich/format"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"
	"github.com/signadot/go-rich/stream"
)

// Parse parses d into a value paired with its metadata.
func Parse(d []byte, opts ...ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

// ParseString is Parse for strings.
func ParseString(s string, opts ...ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	return Parse([]byte(s), opts...)
}

// ParseReader parses the document read from r.
func ParseReader(r io.Reader, opts ...ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	pOpts := newParseOpts(opts)
	dec := stream.NewDecoder(r, pOpts.StreamOpts()...)
	return build.Build(dec, pOpts.BuildOpts()...)
}

// ParseFile parses the file at path. Unless overridden by opts, the format
// follows the file suffix and locations name the file.
func ParseFile(path string, opts ...ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	f, err := os.Open(path)
	if err != nil {
		return rich.Rich[*ir.Node, rich.Meta]{}, err
	}
	defer f.Close()
	pre := []ParseOption{ParseSource(path)}
	if ff, err := format.FromPath(path); err == nil {
		pre = append(pre, ParseFormat(ff))
	}
	return ParseReader(f, append(pre, opts...)...)
}

// ParseValue parses d and discards the metadata.
func ParseValue(d []byte, opts ...ParseOption) (*ir.Node, error) {
	r, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}
