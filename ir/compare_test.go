package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Array", FromString("a"), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), FromKeyVals(nil), -1},
		{"Object < Struct", FromKeyVals(nil), FromStruct("T", nil), -1},
		{"Struct < Union", FromStruct("T", nil), FromUnion("U", "A"), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		{"Int < Float", FromInt(1), FromFloat(1.0), -1},
		{"Float < StringNum", FromFloat(1.0), FromNumber("1"), -1},
		{"Int < Int", FromInt(1), FromInt(2), -1},

		{"Short Array < Long Array", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"Object Value Comparison",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(2)}}),
			-1},
		{"Struct Name Comparison",
			FromStruct("A", []KeyVal{{Key: "x", Val: FromInt(9)}}),
			FromStruct("B", []KeyVal{{Key: "x", Val: FromInt(1)}}),
			-1},
		{"Union Variant Comparison",
			FromUnion("Op", "Delete", FromBool(true)),
			FromUnion("Op", "Update", FromBool(true)),
			-1},
		{"Union Payload Equal",
			FromUnionFields("Op", "Update", []KeyVal{{Key: "n", Val: FromInt(1)}}),
			FromUnionFields("Op", "Update", []KeyVal{{Key: "n", Val: FromInt(1)}}),
			0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b)
			if got != tt.expected {
				t.Errorf("Compare(%v, %v) = %d; want %d", tt.a.Type, tt.b.Type, got, tt.expected)
			}
			if tt.expected != 0 {
				if rev := Compare(tt.b, tt.a); rev != -tt.expected {
					t.Errorf("reverse Compare = %d; want %d", rev, -tt.expected)
				}
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromSlice([]*Node{FromInt(1), FromFloat(2.5)})},
		{Key: "u", Val: FromUnion("Op", "Delete", FromBool(true))},
	})
	c := orig.Clone()
	if !Equal(orig, c) {
		t.Fatalf("clone differs from original")
	}
	*c.Values[0].Values[0].Int64 = 7
	c.Fields[1].String = "v"
	if *orig.Values[0].Values[0].Int64 != 1 {
		t.Errorf("clone shares int storage")
	}
	if orig.Fields[1].String != "u" {
		t.Errorf("clone shares field nodes")
	}
}

func TestTypeKind(t *testing.T) {
	want := map[Type]Kind{
		NullType:   PrimitiveKind,
		NumberType: PrimitiveKind,
		StringType: PrimitiveKind,
		BoolType:   PrimitiveKind,
		ObjectType: MapKind,
		ArrayType:  SequenceKind,
		StructType: ProductKind,
		UnionType:  SumKind,
	}
	for _, ty := range Types() {
		if got := ty.Kind(); got != want[ty] {
			t.Errorf("%s.Kind() = %s; want %s", ty, got, want[ty])
		}
		var back Type
		d, _ := ty.MarshalText()
		if err := back.UnmarshalText(d); err != nil || back != ty {
			t.Errorf("text round trip of %s gave %s (%v)", ty, back, err)
		}
	}
}
