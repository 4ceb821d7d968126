package patch

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/go-rich/debug"
	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/format"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/parse"
	"github.com/signadot/go-rich/rich"
)

// Apply applies the RFC 6902 JSON patch in patchJSON to the value of r and
// reattaches the metadata of r to the result.
//
// The patched value is decoded with opts, which should carry the shape r
// was parsed with. If the patch changed the shape of the value, Apply
// returns the patched value with zero metadata and a *rich.ShapeMismatch.
func Apply(r rich.Rich[*ir.Node, rich.Meta], patchJSON []byte, opts ...parse.ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return rich.Rich[*ir.Node, rich.Meta]{}, fmt.Errorf("decode patch: %w", err)
	}
	return apply(r, p.Apply, opts)
}

// ApplyMerge is Apply for RFC 7386 merge patches.
func ApplyMerge(r rich.Rich[*ir.Node, rich.Meta], mergeJSON []byte, opts ...parse.ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	return apply(r, func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, mergeJSON)
	}, opts)
}

func apply(r rich.Rich[*ir.Node, rich.Meta], f func([]byte) ([]byte, error), opts []parse.ParseOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(r.Value, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeIndent(0)); err != nil {
		return rich.Rich[*ir.Node, rich.Meta]{}, err
	}
	out, err := f(buf.Bytes())
	if err != nil {
		return rich.Rich[*ir.Node, rich.Meta]{}, fmt.Errorf("apply patch: %w", err)
	}
	if debug.Patch() {
		debug.Logf("patch %s\n   -> %s\n", buf.String(), string(out))
	}
	v, err := parse.ParseValue(out, append(opts, parse.ParseJSON())...)
	if err != nil {
		return rich.Rich[*ir.Node, rich.Meta]{}, err
	}
	if debug.Merge() {
		debug.Logf("merge %v\n   with %v", v, r.Meta)
	}
	in, err := rich.Merge(v, r.Meta)
	if err != nil {
		if debug.Patch() || debug.Merge() {
			debug.Logf("patch: metadata dropped: %v\n", err)
		}
		return rich.New(v, rich.Meta{}), err
	}
	return rich.DeepSplit(in), nil
}
