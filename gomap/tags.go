package gomap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// FieldInfo holds field metadata extracted from struct tags
type FieldInfo struct {
	// Name is the struct field name
	Name string

	// FieldName is the name of the field in documents, `rich:"field=..."`.
	FieldName string

	// Index is the index of the field in its struct
	Index int

	// Type is the Go type of the field
	Type reflect.Type
}

// ParseStructTag parses a struct tag string and returns a map of key-value pairs.
// Handles comma-separated values: `rich:"key1=value1,key2=value2,flag"`
// Supports quoted values: `rich:"field='a b'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}
	var parts []string
	var current strings.Builder
	inQuote := false
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			current.WriteByte(c)
		case c == ',' && !inQuote:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("invalid tag %q: unterminated quote", tag)
	}
	parts = append(parts, current.String())

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(strings.TrimSpace(part[idx+1:]))
		} else {
			result[part] = ""
		}
	}
	return result, nil
}

func unquoteValue(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	return value
}

var fieldCache sync.Map // reflect.Type -> []FieldInfo

// StructFields returns the mapped fields of struct type t in declaration
// order. Unexported fields and fields tagged `rich:"omit"` are left out.
func StructFields(t reflect.Type) ([]FieldInfo, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct", t)
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]FieldInfo), nil
	}
	var res []FieldInfo
	seen := map[string]string{}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, err := ParseStructTag(f.Tag.Get("rich"))
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", f.Name, t, err)
		}
		if _, omit := tag["omit"]; omit {
			continue
		}
		name := f.Name
		if v, ok := tag["field"]; ok && v != "" {
			name = v
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("fields %s and %s of %s both map to %q", prev, f.Name, t, name)
		}
		seen[name] = f.Name
		res = append(res, FieldInfo{Name: f.Name, FieldName: name, Index: i, Type: f.Type})
	}
	fieldCache.Store(t, res)
	return res, nil
}
