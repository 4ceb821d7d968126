package gomap

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/signadot/go-rich/schema"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// isText reports whether values of t are mapped to and from strings through
// the encoding.Text{Marshaler,Unmarshaler} interfaces.
func isText(t reflect.Type) bool {
	return t.Implements(textMarshalerType) && reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

type shaper struct {
	reg  *schema.Registry
	seen map[reflect.Type]bool
}

// ShapeOf returns the shape of documents which FromIR maps to values of
// type t. Recursive struct types are expressed with references.
func ShapeOf(t reflect.Type) (schema.Shape, error) {
	s := &shaper{reg: schema.NewRegistry(), seen: map[reflect.Type]bool{}}
	return s.shape(t, "")
}

func (s *shaper) shape(t reflect.Type, path string) (schema.Shape, error) {
	if isText(t) {
		return schema.String(), nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return schema.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.Int(), nil
	case reflect.Float32, reflect.Float64:
		return schema.Float(), nil
	case reflect.String:
		return schema.String(), nil
	case reflect.Interface:
		if t.NumMethod() != 0 {
			break
		}
		return schema.Any(), nil
	case reflect.Pointer:
		elem, err := s.shape(t.Elem(), path)
		if err != nil {
			return nil, err
		}
		return schema.Nullable(elem), nil
	case reflect.Slice:
		elem, err := s.shape(t.Elem(), path+"[]")
		if err != nil {
			return nil, err
		}
		return schema.Seq(elem), nil
	case reflect.Array:
		elem, err := s.shape(t.Elem(), path+"[]")
		if err != nil {
			return nil, err
		}
		elems := make([]schema.Shape, t.Len())
		for i := range elems {
			elems[i] = elem
		}
		return schema.Tuple(elems...), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &TypeError{FieldPath: path, Expected: "string map key", Actual: t.Key().String()}
		}
		elem, err := s.shape(t.Elem(), path+"{}")
		if err != nil {
			return nil, err
		}
		return schema.Map(elem), nil
	case reflect.Struct:
		return s.structShape(t, path)
	}
	return nil, &TypeError{FieldPath: path, Expected: "mappable type", Actual: t.String()}
}

func (s *shaper) structShape(t reflect.Type, path string) (schema.Shape, error) {
	name := typeName(t)
	if s.seen[t] {
		return s.reg.Ref(name), nil
	}
	s.seen[t] = true
	st := schema.Struct(name)
	if err := s.reg.Register(st); err != nil {
		return nil, fmt.Errorf("shape of %s: %w", t, err)
	}
	fields, err := StructFields(t)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		fs, err := s.shape(f.Type, fieldPath(path, f.FieldName))
		if err != nil {
			return nil, err
		}
		st.Field(f.FieldName, fs)
	}
	return st, nil
}
