package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type Type

	// Name is the registered type name of struct and union nodes.
	Name string
	// Variant is the active tag of a union node.
	Variant string

	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	dst := &Node{
		Type:    y.Type,
		Name:    y.Name,
		Variant: y.Variant,
		String:  y.String,
		Bool:    y.Bool,
		Number:  y.Number,
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber creates a number node which keeps its literal text, used for
// numbers which fit neither int64 nor float64 exactly.
func FromNumber(text string) *Node {
	return &Node{
		Type:   NumberType,
		Number: text,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	return fromKeyVals(&Node{Type: ObjectType}, kvs)
}

func fromKeyVals(res *Node, kvs []KeyVal) *Node {
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = FromString(kvs[i].Key)
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(ySlice)),
	}
	copy(res.Values, ySlice)
	return res
}

// FromStruct creates a product node. The fields must be given in the
// declaration order of the named type.
func FromStruct(name string, kvs []KeyVal) *Node {
	return fromKeyVals(&Node{Type: StructType, Name: name}, kvs)
}

// FromUnion creates a sum node with a positional payload. A unit variant
// has no payload.
func FromUnion(name, variant string, payload ...*Node) *Node {
	res := &Node{
		Type:    UnionType,
		Name:    name,
		Variant: variant,
	}
	if len(payload) != 0 {
		res.Values = make([]*Node, len(payload))
		copy(res.Values, payload)
	}
	return res
}

// FromUnionFields creates a sum node whose variant carries named fields.
func FromUnionFields(name, variant string, kvs []KeyVal) *Node {
	return fromKeyVals(&Node{Type: UnionType, Name: name, Variant: variant}, kvs)
}

// Named reports whether the children of y are addressed by name.
func (y *Node) Named() bool {
	switch y.Type {
	case ObjectType, StructType:
		return true
	case UnionType:
		return len(y.Fields) != 0
	}
	return false
}

// Keys returns the field names of an object, struct or named union payload.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
