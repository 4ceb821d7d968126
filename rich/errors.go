package rich

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIDExhausted is returned by Scope.Next once the maximum identifier
	// has been handed out. It aborts the session in which it occurs.
	ErrIDExhausted = errors.New("identifier space exhausted")
	// ErrDecodeFailed marks errors from the decoder collaborator or from
	// shape directed decoding.
	ErrDecodeFailed = errors.New("decode failed")
	// ErrShapeMismatch marks a value whose shape disagrees with the
	// metadata it is merged with.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// DecodeError wraps an error reported while building metadata for a
// document.
type DecodeError struct {
	Path string
	Loc  Location
	Err  error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Loc.IsValid() {
		b.WriteString(" at ")
		b.WriteString(e.Loc.String())
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("unknown error")
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecodeFailed }

type MismatchReason int

const (
	LengthMismatch MismatchReason = iota + 1
	KeySetMismatch
	VariantMismatch
)

func (r MismatchReason) String() string {
	switch r {
	case LengthMismatch:
		return "length mismatch"
	case KeySetMismatch:
		return "key set mismatch"
	case VariantMismatch:
		return "variant mismatch"
	}
	return fmt.Sprintf("mismatch(%d)", int(r))
}

// ShapeMismatch describes the first place where a value and its metadata
// disagree. Which fields are set depends on Reason:
//
//   - LengthMismatch: Expected (metadata length) and Actual (value length)
//   - KeySetMismatch: Missing (keys only in the metadata) and Extra (keys
//     only in the value)
//   - VariantMismatch: ExpectedTag (metadata variant) and ActualTag
//     (value variant)
type ShapeMismatch struct {
	Reason MismatchReason
	Path   string

	Expected, Actual       int
	Missing, Extra         []string
	ExpectedTag, ActualTag string
}

func (e *ShapeMismatch) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason.String())
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	switch e.Reason {
	case LengthMismatch:
		fmt.Fprintf(&b, ": expected %d elements, got %d", e.Expected, e.Actual)
	case KeySetMismatch:
		if len(e.Missing) != 0 {
			fmt.Fprintf(&b, ": missing %q", e.Missing)
		}
		if len(e.Extra) != 0 {
			fmt.Fprintf(&b, ": extra %q", e.Extra)
		}
	case VariantMismatch:
		fmt.Fprintf(&b, ": expected %q, got %q", e.ExpectedTag, e.ActualTag)
	}
	return b.String()
}

func (e *ShapeMismatch) Is(target error) bool { return target == ErrShapeMismatch }
