package schema

import (
	"fmt"
	"strings"
)

// Shape is the expected shape of a value.
type Shape interface {
	String() string
	shape()
}

// Accept is a set of scalar types.
type Accept int

const (
	AcceptNull Accept = 1 << iota
	AcceptBool
	AcceptInt
	AcceptFloat
	AcceptString

	AcceptNumber = AcceptInt | AcceptFloat
	AcceptAll    = AcceptNull | AcceptBool | AcceptNumber | AcceptString
)

func (a Accept) String() string {
	var parts []string
	for _, x := range []struct {
		a    Accept
		name string
	}{
		{AcceptNull, "null"},
		{AcceptBool, "bool"},
		{AcceptInt, "int"},
		{AcceptFloat, "float"},
		{AcceptString, "string"},
	} {
		if a&x.a != 0 {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "|")
}

// ScalarShape accepts primitives of the types in Accept. With ToFloat set,
// integers are stored as floats.
type ScalarShape struct {
	Accept  Accept
	ToFloat bool
}

// AnyShape accepts any value: objects become maps and arrays sequences.
type AnyShape struct{}

type NullableShape struct {
	Elem Shape
}

type SeqShape struct {
	Elem Shape
}

// MapShape is an object with arbitrary keys and values of one shape.
type MapShape struct {
	Elem Shape
}

// TupleShape is a fixed length array, used as positional payload of a
// variant with more than one value.
type TupleShape struct {
	Elems []Shape
}

func Any() Shape { return AnyShape{} }

func String() *ScalarShape { return &ScalarShape{Accept: AcceptString} }
func Int() *ScalarShape    { return &ScalarShape{Accept: AcceptInt} }
func Bool() *ScalarShape   { return &ScalarShape{Accept: AcceptBool} }
func Null() *ScalarShape   { return &ScalarShape{Accept: AcceptNull} }

// Float accepts any number and stores it as a float.
func Float() *ScalarShape { return &ScalarShape{Accept: AcceptNumber, ToFloat: true} }

// Number accepts any number and keeps integers as integers.
func Number() *ScalarShape { return &ScalarShape{Accept: AcceptNumber} }

// Scalar accepts any primitive.
func Scalar() *ScalarShape { return &ScalarShape{Accept: AcceptAll} }

func Nullable(s Shape) *NullableShape { return &NullableShape{Elem: s} }
func Seq(s Shape) *SeqShape           { return &SeqShape{Elem: s} }
func Map(s Shape) *MapShape           { return &MapShape{Elem: s} }
func Tuple(s ...Shape) *TupleShape    { return &TupleShape{Elems: s} }

func (s *ScalarShape) String() string   { return s.Accept.String() }
func (AnyShape) String() string         { return "any" }
func (s *NullableShape) String() string { return "?" + s.Elem.String() }
func (s *SeqShape) String() string      { return "[" + s.Elem.String() + "]" }
func (s *MapShape) String() string      { return "{" + s.Elem.String() + "}" }
func (s *TupleShape) String() string {
	parts := make([]string, len(s.Elems))
	for i, e := range s.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (*ScalarShape) shape()   {}
func (AnyShape) shape()       {}
func (*NullableShape) shape() {}
func (*SeqShape) shape()      {}
func (*MapShape) shape()      {}
func (*TupleShape) shape()    {}
func (*StructShape) shape()   {}
func (*UnionShape) shape()    {}
func (*RefShape) shape()      {}

// Field is one field of a product.
type Field struct {
	Name  string
	Shape Shape
}

// StructShape is a product of named fields, in declaration order.
type StructShape struct {
	Name   string
	Fields []Field
	index  map[string]int
}

func Struct(name string) *StructShape {
	return &StructShape{Name: name, index: map[string]int{}}
}

// Field declares the next field. Declaring a field twice panics.
func (s *StructShape) Field(name string, shape Shape) *StructShape {
	if _, ok := s.index[name]; ok {
		panic(fmt.Sprintf("schema: struct %s: duplicate field %q", s.Name, name))
	}
	if shape == nil {
		panic(fmt.Sprintf("schema: struct %s: nil shape for field %q", s.Name, name))
	}
	s.index[name] = len(s.Fields)
	s.Fields = append(s.Fields, Field{Name: name, Shape: shape})
	return s
}

// Lookup returns the declaration index and shape of a field.
func (s *StructShape) Lookup(name string) (int, Shape, bool) {
	i, ok := s.index[name]
	if !ok {
		return -1, nil, false
	}
	return i, s.Fields[i].Shape, true
}

func (s *StructShape) TypeName() string { return s.Name }
func (s *StructShape) String() string   { return s.Name }

// Variant is one alternative of a sum. Payload is nil for unit variants.
type Variant struct {
	Name    string
	Payload Shape
}

// UnionShape is a sum of named variants.
type UnionShape struct {
	Name     string
	Variants []Variant
	index    map[string]int
}

func Union(name string) *UnionShape {
	return &UnionShape{Name: name, index: map[string]int{}}
}

// Variant declares a variant carrying payload. A *StructShape payload gives
// the variant named fields, a *TupleShape several positional values and
// any other shape a single positional value. Declaring a variant twice
// panics.
func (u *UnionShape) Variant(name string, payload Shape) *UnionShape {
	if _, ok := u.index[name]; ok {
		panic(fmt.Sprintf("schema: union %s: duplicate variant %q", u.Name, name))
	}
	u.index[name] = len(u.Variants)
	u.Variants = append(u.Variants, Variant{Name: name, Payload: payload})
	return u
}

// Unit declares a variant without payload.
func (u *UnionShape) Unit(name string) *UnionShape {
	return u.Variant(name, nil)
}

func (u *UnionShape) Lookup(name string) (*Variant, bool) {
	i, ok := u.index[name]
	if !ok {
		return nil, false
	}
	return &u.Variants[i], true
}

func (u *UnionShape) TypeName() string { return u.Name }
func (u *UnionShape) String() string   { return u.Name }

// Named is a registered product or sum.
type Named interface {
	Shape
	TypeName() string
}
