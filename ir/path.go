package ir

import (
	"strconv"
	"strings"
)

// FieldPath appends a field selector to a kinded path. The root path is "".
//
//	FieldPath("", "a")      == "a"
//	FieldPath("a", "b")     == "a.b"
//	FieldPath("a", "x.y")   == `a."x.y"`
func FieldPath(prefix, field string) string {
	if QuoteField(field) {
		field = strconv.Quote(field)
	}
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// IndexPath appends an index selector to a kinded path.
func IndexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// QuoteField reports whether a field name must be quoted in a kinded path.
func QuoteField(f string) bool {
	if f == "" {
		return true
	}
	switch f[0] {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '-':
		return true
	}
	return strings.ContainsAny(f, ".[]{}'\"\\ \t\n:#")
}

// Selector is one step of a kinded path.
type Selector struct {
	Field   string
	Index   int
	IsIndex bool
}

func (s Selector) String() string {
	if s.IsIndex {
		return IndexPath("", s.Index)
	}
	return FieldPath("", s.Field)
}

// SplitPath splits a kinded path into its selectors.
func SplitPath(p string) ([]Selector, error) {
	var res []Selector
	for len(p) != 0 {
		switch p[0] {
		case '.':
			p = p[1:]
		case '[':
			j := strings.IndexByte(p, ']')
			if j == -1 {
				return nil, &PathError{Path: p, Msg: "unterminated index"}
			}
			i, err := strconv.Atoi(p[1:j])
			if err != nil || i < 0 {
				return nil, &PathError{Path: p, Msg: "bad index"}
			}
			res = append(res, Selector{Index: i, IsIndex: true})
			p = p[j+1:]
		case '"':
			q, err := strconv.QuotedPrefix(p)
			if err != nil {
				return nil, &PathError{Path: p, Msg: "bad quoted field"}
			}
			f, _ := strconv.Unquote(q)
			res = append(res, Selector{Field: f})
			p = p[len(q):]
		default:
			j := strings.IndexAny(p, ".[")
			if j == -1 {
				j = len(p)
			}
			res = append(res, Selector{Field: p[:j]})
			p = p[j:]
		}
	}
	return res, nil
}

type PathError struct {
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	return "path " + strconv.Quote(e.Path) + ": " + e.Msg
}
