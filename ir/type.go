package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
	StructType
	UnionType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType: "Object",
		ArrayType:  "Array",
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		NullType:   "Null",
		StructType: "Struct",
		UnionType:  "Union",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Number": NumberType,
		"String": StringType,
		"Array":  ArrayType,
		"Object": ObjectType,
		"Struct": StructType,
		"Union":  UnionType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ObjectType,
		ArrayType,
		StructType,
		UnionType,
	}
}

func (t Type) IsLeaf() bool {
	return t.Kind() == PrimitiveKind
}

// Kind returns the structural kind of values of type t.
func (t Type) Kind() Kind {
	switch t {
	case ObjectType:
		return MapKind
	case ArrayType:
		return SequenceKind
	case StructType:
		return ProductKind
	case UnionType:
		return SumKind
	default:
		return PrimitiveKind
	}
}

// Kind classifies value shapes for metadata purposes.
type Kind int

const (
	PrimitiveKind Kind = iota
	ProductKind
	SequenceKind
	MapKind
	SumKind
)

func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ProductKind:
		return "product"
	case SequenceKind:
		return "sequence"
	case MapKind:
		return "map"
	case SumKind:
		return "sum"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for _, kk := range []Kind{PrimitiveKind, ProductKind, SequenceKind, MapKind, SumKind} {
		if kk.String() == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}
