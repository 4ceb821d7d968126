// Package format names the document formats understood by the decoder and
// encoder.
package format
