package rich

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/token"
)

func mark(id ID, line, col int) Mark {
	return Mark{ID: id, Loc: Location{Source: "test.json", Pos: token.Pos{Line: line, Col: col}}}
}

func leaf(m Mark, n *ir.Node) Rich[*Inline, Mark] {
	return New(&Inline{Type: n.Type, Scalar: n}, m)
}

func keyMark(m Mark) *Mark { return &m }

// scenario is
//
//	{
//	  "str": "Hello, World!",
//	  "num": 42,
//	  "nested": {
//	    "crab": true
//	  }
//	}
func scenario() Rich[*Inline, Mark] {
	nested := New(&Inline{
		Type: ir.ObjectType,
		Keys: []Key{{Name: "crab", Mark: keyMark(mark(8, 5, 5))}},
		Values: []Rich[*Inline, Mark]{
			leaf(mark(9, 5, 13), ir.FromBool(true)),
		},
	}, mark(7, 4, 13))
	return New(&Inline{
		Type: ir.ObjectType,
		Keys: []Key{
			{Name: "str", Mark: keyMark(mark(2, 2, 3))},
			{Name: "num", Mark: keyMark(mark(4, 3, 3))},
			{Name: "nested", Mark: keyMark(mark(6, 4, 3))},
		},
		Values: []Rich[*Inline, Mark]{
			leaf(mark(3, 2, 10), ir.FromString("Hello, World!")),
			leaf(mark(5, 3, 10), ir.FromInt(42)),
			nested,
		},
	}, mark(1, 1, 1))
}

func TestDeepSplitScenario(t *testing.T) {
	v, m := DeepSplit(scenario()).Unpack()
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "str", Val: ir.FromString("Hello, World!")},
		{Key: "num", Val: ir.FromInt(42)},
		{Key: "nested", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "crab", Val: ir.FromBool(true)},
		})},
	})
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("plain value mismatch (-want +got):\n%s", diff)
	}
	if m.ID != 1 {
		t.Errorf("root id %d", m.ID)
	}
	a, ok := m.Nested.(AssocMeta)
	if !ok {
		t.Fatalf("root metadata is %T", m.Nested)
	}
	if len(a.Entries) != 3 {
		t.Fatalf("%d entries", len(a.Entries))
	}
	if got := a.Entries[1].Value.Loc.Line; got != 3 {
		t.Errorf("num line %d; want 3", got)
	}
	if got := a.Entries[2].KeyMark.ID; got != 6 {
		t.Errorf("nested key id %d", got)
	}
	crab, ok := Find(m, "nested.crab")
	if !ok || crab.Loc.Line != 5 {
		t.Errorf("nested.crab mark %v, %t", crab, ok)
	}
}

func TestMergeRoundTrip(t *testing.T) {
	orig := DeepSplit(scenario())
	in, err := Merge(orig.Value, orig.Meta)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(scenario(), in); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
	back := DeepSplit(in)
	if diff := cmp.Diff(orig, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeProductAndSum(t *testing.T) {
	point := New(&Inline{
		Type: ir.StructType,
		Name: "Point",
		Keys: []Key{{Name: "x"}, {Name: "y"}},
		Values: []Rich[*Inline, Mark]{
			leaf(mark(3, 1, 10), ir.FromInt(1)),
			leaf(mark(2, 1, 2), ir.FromInt(2)),
		},
	}, mark(1, 1, 1))
	seq := New(&Inline{
		Type: ir.ArrayType,
		Values: []Rich[*Inline, Mark]{
			point,
			New(&Inline{Type: ir.UnionType, Name: "Op", Variant: "Noop"}, mark(4, 2, 1)),
			New(&Inline{
				Type:    ir.UnionType,
				Name:    "Op",
				Variant: "Delete",
				Values:  []Rich[*Inline, Mark]{leaf(mark(6, 3, 12), ir.FromBool(true))},
			}, mark(5, 3, 1)),
		},
	}, mark(10, 1, 1))

	ext := DeepSplit(seq)
	wantValue := ir.FromSlice([]*ir.Node{
		ir.FromStruct("Point", []ir.KeyVal{{Key: "x", Val: ir.FromInt(1)}, {Key: "y", Val: ir.FromInt(2)}}),
		ir.FromUnion("Op", "Noop"),
		ir.FromUnion("Op", "Delete", ir.FromBool(true)),
	})
	if diff := cmp.Diff(wantValue, ext.Value); diff != "" {
		t.Errorf("plain value mismatch (-want +got):\n%s", diff)
	}
	in, err := Merge(ext.Value, ext.Meta)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(seq, in); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeMismatch(t *testing.T) {
	seqMeta := Wrap[Nested](mark(1, 1, 1), SequenceMeta{Elems: []Meta{
		Wrap[Nested](mark(2, 1, 2), Unit{}),
		Wrap[Nested](mark(3, 1, 4), Unit{}),
		Wrap[Nested](mark(4, 1, 6), Unit{}),
	}})
	mapMeta := func(keys ...string) Meta {
		es := make([]Entry, len(keys))
		for i, k := range keys {
			es[i] = Entry{Key: k, Value: Wrap[Nested](mark(ID(i+2), i+2, 1), Unit{})}
		}
		return Wrap[Nested](mark(1, 1, 1), AssocMeta{Entries: es})
	}
	obj := func(keys ...string) *ir.Node {
		kvs := make([]ir.KeyVal, len(keys))
		for i, k := range keys {
			kvs[i] = ir.KeyVal{Key: k, Val: ir.FromInt(int64(i))}
		}
		return ir.FromKeyVals(kvs)
	}
	opMeta := Wrap[Nested](mark(1, 1, 1), SumMeta{
		Variant: "Update",
		Payload: []FieldMeta{{Name: "n", Meta: Wrap[Nested](mark(2, 1, 5), Unit{})}},
	})

	tests := []struct {
		name  string
		value *ir.Node
		meta  Meta
		want  *ShapeMismatch
	}{
		{
			name:  "shorter sequence",
			value: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
			meta:  seqMeta,
			want:  &ShapeMismatch{Reason: LengthMismatch, Expected: 3, Actual: 2},
		},
		{
			name: "nested longer sequence",
			value: ir.FromKeyVals([]ir.KeyVal{{Key: "xs", Val: ir.FromSlice([]*ir.Node{
				ir.Null(), ir.Null(), ir.Null(), ir.Null(),
			})}}),
			meta: Wrap[Nested](mark(9, 1, 1), AssocMeta{Entries: []Entry{{Key: "xs", Value: seqMeta}}}),
			want: &ShapeMismatch{Reason: LengthMismatch, Path: "xs", Expected: 3, Actual: 4},
		},
		{
			name:  "key set",
			value: obj("a", "c", "d"),
			meta:  mapMeta("a", "b", "c"),
			want:  &ShapeMismatch{Reason: KeySetMismatch, Missing: []string{"b"}, Extra: []string{"d"}},
		},
		{
			name:  "duplicate key",
			value: obj("a", "b", "a"),
			meta:  mapMeta("a", "b"),
			want:  &ShapeMismatch{Reason: KeySetMismatch, Extra: []string{"a"}},
		},
		{
			name:  "sum variant",
			value: ir.FromUnion("Op", "Delete", ir.FromBool(true)),
			meta:  opMeta,
			want:  &ShapeMismatch{Reason: VariantMismatch, ExpectedTag: "Update", ActualTag: "Delete"},
		},
		{
			name:  "kind",
			value: ir.FromInt(3),
			meta:  mapMeta("a"),
			want:  &ShapeMismatch{Reason: VariantMismatch, ExpectedTag: "map", ActualTag: "primitive"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.value, tt.meta)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("expected shape mismatch, got %v", err)
			}
			var sm *ShapeMismatch
			if !errors.As(err, &sm) {
				t.Fatalf("expected *ShapeMismatch, got %T", err)
			}
			if diff := cmp.Diff(tt.want, sm); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeReorderedKeys(t *testing.T) {
	ext := DeepSplit(scenario())
	v := ir.FromKeyVals([]ir.KeyVal{
		{Key: "nested", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "crab", Val: ir.FromBool(false)}})},
		{Key: "num", Val: ir.FromInt(43)},
		{Key: "str", Val: ir.FromString("bye")},
	})
	in, err := Merge(v, ext.Meta)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(in.Value.Keys))
	for i, k := range in.Value.Keys {
		got[i] = k.Name + "=" + k.Mark.ID.String() + "/" + in.Value.Values[i].Meta.ID.String()
	}
	want := []string{"nested=a6/a7", "num=a4/a5", "str=a2/a3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergeProductFieldsPanics(t *testing.T) {
	meta := Wrap[Nested](mark(1, 1, 1), ProductMeta{Fields: []FieldMeta{
		{Name: "x", Meta: Wrap[Nested](mark(2, 1, 2), Unit{})},
	}})
	v := ir.FromStruct("Point", []ir.KeyVal{{Key: "y", Val: ir.FromInt(1)}})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if s, _ := r.(string); !strings.Contains(s, "Point") {
			t.Errorf("panic %v does not name the product", r)
		}
	}()
	_, _ = Merge(v, meta)
}

func TestMergeVariantPayloadPanics(t *testing.T) {
	named := SumMeta{Variant: "Add", Payload: []FieldMeta{
		{Name: "path", Meta: Wrap[Nested](mark(2, 1, 9), Unit{})},
	}}
	positional := SumMeta{Variant: "Add", Payload: []FieldMeta{
		{Meta: Wrap[Nested](mark(2, 1, 9), Unit{})},
	}}
	tests := []struct {
		name string
		meta SumMeta
		v    *ir.Node
	}{
		{"named metadata, positional value", named, ir.FromUnion("Op", "Add", ir.FromString("/a"))},
		{"positional metadata, named value", positional,
			ir.FromUnionFields("Op", "Add", []ir.KeyVal{{Key: "path", Val: ir.FromString("/a")}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if s, _ := r.(string); !strings.Contains(s, "variant Add") {
					t.Errorf("panic %v does not name the variant", r)
				}
			}()
			_, _ = Merge(tt.v, Wrap[Nested](mark(1, 1, 1), tt.meta))
		})
	}
}

func TestMergeDoesNotShareValue(t *testing.T) {
	ext := DeepSplit(scenario())
	in, err := Merge(ext.Value, ext.Meta)
	if err != nil {
		t.Fatal(err)
	}
	*in.Value.Values[1].Value.Scalar.Int64 = 0
	if *ir.Get(ext.Value, "num").Int64 != 42 {
		t.Errorf("merge aliases the input value")
	}
}

func TestShapeMismatchError(t *testing.T) {
	err := &ShapeMismatch{Reason: LengthMismatch, Path: "a[1]", Expected: 3, Actual: 2}
	if got, want := err.Error(), "length mismatch at a[1]: expected 3 elements, got 2"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
	dec := &DecodeError{Path: "a", Loc: Location{Pos: token.Pos{Line: 2, Col: 3}}, Err: errors.New("boom")}
	if !errors.Is(dec, ErrDecodeFailed) {
		t.Errorf("decode error is not ErrDecodeFailed")
	}
	if got, want := dec.Error(), "decode at 2:3 (a): boom"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}
