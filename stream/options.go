package stream

import "github.com/signadot/go-rich/format"

// StreamOption configures Decoder behavior.
type StreamOption func(*streamOpts)

type streamOpts struct {
	format format.Format
	doc    int
}

// WithFormat selects the input format. JSON input is checked to be JSON;
// YAML accepts any YAML document.
func WithFormat(f format.Format) StreamOption {
	return func(opts *streamOpts) {
		opts.format = f
	}
}

// WithDocument selects which document of a multi-document YAML stream is
// decoded (0-based).
func WithDocument(i int) StreamOption {
	return func(opts *streamOpts) {
		opts.doc = i
	}
}
