package patch

import (
	"cmp"
	"errors"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/parse"
	"github.com/signadot/go-rich/rich"
	"github.com/signadot/go-rich/schema"
)

const scenarioJSON = `{
  "str": "Hello, World!",
  "num": 42,
  "nested": {
    "crab": true
  }
}`

func byID(m rich.Meta) []rich.Annotation {
	as := rich.Annotations(m)
	slices.SortFunc(as, func(a, b rich.Annotation) int { return cmp.Compare(a.Mark.ID, b.Mark.ID) })
	return as
}

func mustParse(t *testing.T, doc string, opts ...parse.ParseOption) rich.Rich[*ir.Node, rich.Meta] {
	t.Helper()
	r, err := parse.ParseString(doc, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestApplyKeepsMeta(t *testing.T) {
	r := mustParse(t, scenarioJSON)
	res, err := Apply(r, []byte(`[
		{"op": "replace", "path": "/num", "value": 43},
		{"op": "replace", "path": "/nested/crab", "value": false}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(res.Value, "num"); *got.Int64 != 43 {
		t.Errorf("num %v", got)
	}
	if diff := gocmp.Diff(byID(r.Meta), byID(res.Meta)); diff != "" {
		t.Errorf("meta changed (-want +got):\n%s", diff)
	}
	m, _ := rich.Find(res.Meta, "num")
	if m.Loc.Line != 3 {
		t.Errorf("num at %s", m.Loc)
	}
}

func TestApplyShapeChange(t *testing.T) {
	r := mustParse(t, scenarioJSON)
	tests := []struct {
		name    string
		patch   string
		reason  rich.MismatchReason
		path    string
		missing []string
		extra   []string
	}{
		{"add key", `[{"op": "add", "path": "/nested/shell", "value": 1}]`, rich.KeySetMismatch, "nested", nil, []string{"shell"}},
		{"remove key", `[{"op": "remove", "path": "/str"}]`, rich.KeySetMismatch, "", []string{"str"}, nil},
		{"replace kind", `[{"op": "replace", "path": "/num", "value": [1]}]`, rich.VariantMismatch, "num", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(r, []byte(tt.patch))
			if !errors.Is(err, rich.ErrShapeMismatch) {
				t.Fatalf("got %v", err)
			}
			var sm *rich.ShapeMismatch
			errors.As(err, &sm)
			if sm.Reason != tt.reason || sm.Path != tt.path {
				t.Errorf("got %v", sm)
			}
			if !gocmp.Equal(sm.Missing, tt.missing) || !gocmp.Equal(sm.Extra, tt.extra) {
				t.Errorf("missing %v extra %v", sm.Missing, sm.Extra)
			}
			if res.Value == nil || !res.Meta.IsZero() {
				t.Errorf("expected plain value, got %v %v", res.Value, res.Meta)
			}
		})
	}
}

func TestApplyShaped(t *testing.T) {
	shape := schema.Seq(schema.Union("Op").
		Variant("Set", schema.Struct("Set").Field("path", schema.String()).Field("value", schema.Any())).
		Unit("Noop"))
	r := mustParse(t, `[{"Set": {"path": "a", "value": 1}}, "Noop"]`, parse.ParseShape(shape))
	res, err := Apply(r, []byte(`[{"op": "replace", "path": "/0/Set/value", "value": 2}]`), parse.ParseShape(shape))
	if err != nil {
		t.Fatal(err)
	}
	set := res.Value.Values[0]
	if set.Type != ir.UnionType || *ir.Get(set, "value").Int64 != 2 {
		t.Errorf("got %v", set)
	}
	if diff := gocmp.Diff(byID(r.Meta), byID(res.Meta)); diff != "" {
		t.Errorf("meta changed (-want +got):\n%s", diff)
	}
}

func TestApplyMerge(t *testing.T) {
	r := mustParse(t, scenarioJSON)
	res, err := ApplyMerge(r, []byte(`{"str": "bye"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(res.Value, "str"); got.String != "bye" {
		t.Errorf("str %v", got)
	}
	if _, err := ApplyMerge(r, []byte(`{"str": null}`)); !errors.Is(err, rich.ErrShapeMismatch) {
		t.Errorf("removal: got %v", err)
	}
}

func TestApplyBadPatch(t *testing.T) {
	r := mustParse(t, scenarioJSON)
	if _, err := Apply(r, []byte(`{"op": "add"}`)); err == nil {
		t.Errorf("expected decode error")
	}
	if _, err := Apply(r, []byte(`[{"op": "remove", "path": "/nope"}]`)); err == nil {
		t.Errorf("expected apply error")
	}
}
