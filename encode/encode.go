package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/go-rich/format"
	"github.com/signadot/go-rich/ir"
)

type EncState struct {
	depth, indent int
	keys          bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent: 2,
		keys:   true,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes the plain value of node, followed by a newline. Products
// are written as objects in field order. Sums are externally tagged: a unit
// variant is its name, any other variant an object with the variant name as
// the single key.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	switch es.format {
	case format.JSONFormat:
		if err := encodeJSON(node, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
}

// MustString encodes node as compact JSON and panics on error.
func MustString(node *ir.Node) string {
	buf := &strings.Builder{}
	if err := Encode(node, buf, EncodeIndent(0)); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		node = ir.Null()
	}
	switch node.Type {
	case ir.NullType:
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return writeColored(w, es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		s, err := numberText(node)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.NumberType, ValueColor, s)
	case ir.StringType:
		return writeColored(w, es, ir.StringType, ValueColor, quote(node.String))
	case ir.ArrayType:
		return encodeJSONArray(node.Values, w, es)
	case ir.ObjectType, ir.StructType:
		return encodeJSONObject(node.Type, node.Keys(), node.Values, w, es)
	case ir.UnionType:
		if len(node.Values) == 0 {
			return writeColored(w, es, ir.UnionType, ValueColor, quote(node.Variant))
		}
		payload := unionPayload(node)
		return encodeJSONObject(ir.UnionType, []string{node.Variant}, []*ir.Node{payload}, w, es)
	}
	return fmt.Errorf("cannot encode node of type %s", node.Type)
}

// unionPayload is the value written under a variant's name.
func unionPayload(node *ir.Node) *ir.Node {
	switch {
	case node.Fields != nil:
		return ir.FromKeyVals(kvs(node))
	case len(node.Values) == 1:
		return node.Values[0]
	default:
		return ir.FromSlice(node.Values)
	}
}

func kvs(node *ir.Node) []ir.KeyVal {
	res := make([]ir.KeyVal, len(node.Fields))
	for i := range node.Fields {
		res[i] = ir.KeyVal{Key: node.Fields[i].String, Val: node.Values[i]}
	}
	return res
}

func encodeJSONArray(vs []*ir.Node, w io.Writer, es *EncState) error {
	if err := writeColored(w, es, ir.ArrayType, SepColor, "["); err != nil {
		return err
	}
	if len(vs) == 0 {
		return writeColored(w, es, ir.ArrayType, SepColor, "]")
	}
	es.depth++
	for i, v := range vs {
		if i > 0 {
			if err := writeColored(w, es, ir.ArrayType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ArrayType, SepColor, "]")
}

func encodeJSONObject(t ir.Type, keys []string, vs []*ir.Node, w io.Writer, es *EncState) error {
	if err := writeColored(w, es, t, SepColor, "{"); err != nil {
		return err
	}
	if len(vs) == 0 {
		return writeColored(w, es, t, SepColor, "}")
	}
	es.depth++
	for i, v := range vs {
		if i > 0 {
			if err := writeColored(w, es, t, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeColored(w, es, t, FieldColor, quote(keys[i])); err != nil {
			return err
		}
		sep := ":"
		if es.indent > 0 {
			sep = ": "
		}
		if err := writeColored(w, es, t, SepColor, sep); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, t, SepColor, "}")
}

func numberText(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", fmt.Errorf("cannot encode %v as JSON", f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("number node without value")
}

func quote(s string) string {
	d, _ := json.Marshal(s)
	return string(d)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func writeColored(w io.Writer, es *EncState, t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := toYAML(node)
	if err != nil {
		return err
	}
	indent := es.indent
	if indent == 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(indent))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func toYAML(node *ir.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		}
		return rawNumber(node.Number), nil
	case ir.StringType:
		return node.String, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			y, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			res[i] = y
		}
		return res, nil
	case ir.ObjectType, ir.StructType:
		res := make(yaml.MapSlice, len(node.Values))
		for i, v := range node.Values {
			y, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: node.Fields[i].String, Value: y}
		}
		return res, nil
	case ir.UnionType:
		if len(node.Values) == 0 {
			return node.Variant, nil
		}
		y, err := toYAML(unionPayload(node))
		if err != nil {
			return nil, err
		}
		return yaml.MapSlice{{Key: node.Variant, Value: y}}, nil
	}
	return nil, fmt.Errorf("cannot encode node of type %s", node.Type)
}

// rawNumber keeps the literal text of numbers which fit no Go number type.
type rawNumber string

func (n rawNumber) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}
