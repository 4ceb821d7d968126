package encode_test

import (
	"bytes"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/format"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/parse"
	"github.com/signadot/go-rich/rich"
)

func ops() *ir.Node {
	return ir.FromSlice([]*ir.Node{
		ir.FromUnionFields("Op", "Set", []ir.KeyVal{
			{Key: "path", Val: ir.FromString("a")},
			{Key: "value", Val: ir.FromFloat(2)},
		}),
		ir.FromUnion("Op", "Noop"),
		ir.FromUnion("Op", "Delete", ir.FromString("b")),
		ir.FromUnion("Op", "Move", ir.FromString("c"), ir.FromString("d")),
		ir.Null(),
	})
}

func encodeString(t *testing.T, node *ir.Node, opts ...encode.EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEncodeJSON(t *testing.T) {
	want := `[
  {
    "Set": {
      "path": "a",
      "value": 2.0
    }
  },
  "Noop",
  {
    "Delete": "b"
  },
  {
    "Move": [
      "c",
      "d"
    ]
  },
  null
]
`
	if diff := cmp.Diff(want, encodeString(t, ops())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	compact := `[{"Set":{"path":"a","value":2.0}},"Noop",{"Delete":"b"},{"Move":["c","d"]},null]`
	if got := encode.MustString(ops()); got != compact {
		t.Errorf("compact: got %s", got)
	}
}

func TestEncodeNumbers(t *testing.T) {
	tests := []struct {
		node *ir.Node
		want string
	}{
		{ir.FromInt(-3), "-3"},
		{ir.FromFloat(0.5), "0.5"},
		{ir.FromFloat(1e21), "1e+21"},
		{ir.FromNumber("123456789012345678901234"), "123456789012345678901234"},
		{ir.FromString(`a"b`), `"a\"b"`},
	}
	for _, tt := range tests {
		if got := encode.MustString(tt.node); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
	if err := encode.Encode(ir.FromFloat(math.NaN()), &bytes.Buffer{}); err == nil {
		t.Errorf("NaN encoded as JSON")
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	src := `{"name": "ferris", "legs": [1, 2.5, null, true], "home": {"deep": {}}}`
	v, err := parse.ParseValue([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	y := encodeString(t, v, encode.EncodeFormat(format.YAMLFormat))
	back, err := parse.ParseValue([]byte(y), parse.ParseYAML())
	if err != nil {
		t.Fatalf("%v in\n%s", err, y)
	}
	if !ir.Equal(v, back) {
		t.Errorf("round trip changed value:\n%s", y)
	}
	if !strings.HasPrefix(y, "name: ferris\n") {
		t.Errorf("keys out of order:\n%s", y)
	}
}

const scenarioJSON = `{
  "str": "Hello, World!",
  "num": 42,
  "nested": {
    "crab": true
  }
}`

func metaLines(t *testing.T, m rich.Meta, opts ...encode.EncodeOption) [][]string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeMeta(m, buf, opts...); err != nil {
		t.Fatal(err)
	}
	var res [][]string
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		res = append(res, strings.Fields(line))
	}
	return res
}

func TestEncodeMeta(t *testing.T) {
	r, err := parse.ParseString(scenarioJSON, parse.ParseSource("s.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{".", "a1", "s.json:1:1", "map"},
		{"str", "a2", "s.json:2:3", "key"},
		{"str", "a3", "s.json:2:10", "primitive"},
		{"num", "a4", "s.json:3:3", "key"},
		{"num", "a5", "s.json:3:10", "primitive"},
		{"nested", "a6", "s.json:4:3", "key"},
		{"nested", "a7", "s.json:4:13", "map"},
		{"nested.crab", "a8", "s.json:5:5", "key"},
		{"nested.crab", "a9", "s.json:5:13", "primitive"},
	}
	if diff := cmp.Diff(want, metaLines(t, r.Meta)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	noKeys := metaLines(t, r.Meta, encode.EncodeKeys(false))
	if len(noKeys) != 5 || noKeys[1][0] != "str" || noKeys[1][3] != "primitive" {
		t.Errorf("without keys: %v", noKeys)
	}
}

func TestEncodeMetaSum(t *testing.T) {
	m := rich.Wrap[rich.Nested](rich.Mark{ID: 1}, rich.SumMeta{Variant: "Delete", Payload: []rich.FieldMeta{
		{Meta: rich.Wrap[rich.Nested](rich.Mark{ID: 2}, rich.Unit{})},
	}})
	lines := metaLines(t, m)
	if len(lines) != 2 || lines[0][len(lines[0])-1] != "sum/Delete" {
		t.Errorf("got %v", lines)
	}
}

var escapes = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestEncodeMetaColorsAligned(t *testing.T) {
	save := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = save }()

	r, err := parse.ParseString(scenarioJSON, parse.ParseSource("s.json"))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeMeta(r.Meta, buf, encode.EncodeColors(encode.NewColors())); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("no color escapes in %q", buf.String())
	}
	plain := escapes.ReplaceAllString(buf.String(), "")
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	col := strings.Index(lines[0], "a1")
	for _, line := range lines {
		id := strings.Fields(line)[1]
		if got := strings.Index(line, id); got != col {
			t.Errorf("id %s at column %d, want %d:\n%s", id, got, col, plain)
		}
	}
	want := metaLines(t, r.Meta)
	for i, line := range lines {
		if diff := cmp.Diff(want[i], strings.Fields(line)); diff != "" {
			t.Errorf("line %d (-uncolored +colored):\n%s", i, diff)
		}
	}
}

func TestEncodeColors(t *testing.T) {
	save := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = save }()

	node := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromString("100%")}})
	got := encodeString(t, node, encode.EncodeColors(encode.NewColors()), encode.EncodeIndent(0))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("no color escapes in %q", got)
	}
	if !strings.Contains(got, "100%") || strings.Contains(got, "%!") {
		t.Errorf("percent mangled in %q", got)
	}
	plain := encodeString(t, node, encode.EncodeColors(nil), encode.EncodeIndent(0))
	if plain != `{"a":"100%"}`+"\n" {
		t.Errorf("plain %q", plain)
	}
}
