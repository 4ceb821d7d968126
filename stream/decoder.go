package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	ytoken "github.com/goccy/go-yaml/token"
	"github.com/signadot/go-rich/debug"
	"github.com/signadot/go-rich/token"
)

// Decoder provides structural event-based decoding of JSON and YAML.
// The input is read and parsed on the first call to ReadEvent; the
// document's nodes are then reported depth-first.
type Decoder struct {
	r     io.Reader
	opts  *streamOpts
	state *State
	pd    *token.PosDoc

	parsed bool
	events []Event
	i      int
	err    error
}

// NewDecoder creates a new Decoder reading from r.
func NewDecoder(r io.Reader, opts ...StreamOption) *Decoder {
	streamOpts := &streamOpts{}
	for _, opt := range opts {
		opt(streamOpts)
	}
	return &Decoder{
		r:     r,
		opts:  streamOpts,
		state: NewState(),
	}
}

// ReadEvent reads the next structural event from the stream.
// Returns io.EOF when stream is exhausted.
func (d *Decoder) ReadEvent() (*Event, error) {
	if !d.parsed {
		d.parsed = true
		d.err = d.parse()
		if debug.Decode() {
			debug.Logf("decode: %d events, err=%v\n", len(d.events), d.err)
		}
	}
	if d.i < len(d.events) {
		ev := &d.events[d.i]
		d.i++
		if err := d.state.ProcessEvent(ev); err != nil {
			return nil, &Error{Msg: err.Error(), Pos: ev.Pos}
		}
		if debug.Decode() {
			debug.Logf("decode %s at %s (%s)\n", ev.Type, ev.Pos, d.state.CurrentPath())
		}
		return ev, nil
	}
	if d.err != nil {
		return nil, d.err
	}
	return nil, io.EOF
}

// CurrentPath returns the kinded path of the last event read.
func (d *Decoder) CurrentPath() string {
	return d.state.CurrentPath()
}

// Depth returns the nesting depth after the last event read.
func (d *Decoder) Depth() int {
	return d.state.Depth()
}

func (d *Decoder) parse() error {
	src, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	d.pd = token.NewPosDoc(src)
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return d.parseError(err)
	}
	var docs []ast.Node
	for _, doc := range file.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		docs = append(docs, doc.Body)
	}
	if d.opts.doc >= len(docs) {
		if d.opts.doc == 0 {
			return nil
		}
		return &Error{Msg: fmt.Sprintf("no document %d (have %d)", d.opts.doc, len(docs))}
	}
	if d.opts.format.IsJSON() && len(docs) > 1 {
		return &Error{Msg: "multiple documents in JSON input", Pos: d.pos(docs[1].GetToken())}
	}
	root := docs[d.opts.doc]
	if d.opts.format.IsJSON() {
		if err := checkJSONRoot(root, d); err != nil {
			return err
		}
	}
	return d.walk(root)
}

func (d *Decoder) parseError(err error) error {
	msg := yaml.FormatError(err, false, false)
	var se *yaml.SyntaxError
	if errors.As(err, &se) {
		return &Error{Msg: se.GetMessage(), Pos: d.pos(se.GetToken())}
	}
	return &Error{Msg: msg}
}

func (d *Decoder) pos(tk *ytoken.Token) token.Pos {
	if tk == nil || tk.Position == nil {
		return token.Pos{}
	}
	line, col := tk.Position.Line, tk.Position.Column
	if line < 1 {
		return token.Pos{}
	}
	return d.pd.At(line, col)
}

// nodePos returns where a node starts in the source. A block style
// mapping starts at its first key.
func (d *Decoder) nodePos(n ast.Node) token.Pos {
	if n == nil {
		return token.Pos{}
	}
	switch x := n.(type) {
	case *ast.MappingNode:
		if !x.IsFlowStyle && len(x.Values) != 0 && x.Values[0].Key != nil {
			return d.nodePos(x.Values[0].Key)
		}
	case *ast.MappingValueNode:
		if x.Key != nil {
			return d.nodePos(x.Key)
		}
	case *ast.MappingKeyNode:
		if x.Value != nil {
			return d.nodePos(x.Value)
		}
	case *ast.TagNode:
		return d.pos(x.Start)
	case *ast.LiteralNode:
		return d.pos(x.Start)
	}
	return d.pos(n.GetToken())
}

func (d *Decoder) emit(ev Event) {
	d.events = append(d.events, ev)
}

func (d *Decoder) walk(n ast.Node) error {
	p := d.nodePos(n)
	switch x := n.(type) {
	case *ast.MappingNode:
		d.emit(Event{Type: EventBeginObject, Pos: p})
		for _, mv := range x.Values {
			if err := d.walkEntry(mv); err != nil {
				return err
			}
		}
		d.emit(Event{Type: EventEndObject, Pos: d.pos(x.End)})
		return nil

	case *ast.MappingValueNode:
		// a single entry mapping at top level
		d.emit(Event{Type: EventBeginObject, Pos: p})
		if err := d.walkEntry(x); err != nil {
			return err
		}
		d.emit(Event{Type: EventEndObject})
		return nil

	case *ast.SequenceNode:
		d.emit(Event{Type: EventBeginArray, Pos: p})
		for _, v := range x.Values {
			if err := d.walk(v); err != nil {
				return err
			}
		}
		d.emit(Event{Type: EventEndArray, Pos: d.pos(x.End)})
		return nil

	case *ast.NullNode:
		if d.opts.format.IsJSON() && isImplicitNull(x) {
			return &Error{Msg: "missing value", Pos: p}
		}
		d.emit(Event{Type: EventNull, Pos: p})
	case *ast.BoolNode:
		d.emit(Event{Type: EventBool, Pos: p, Bool: x.Value})
	case *ast.StringNode:
		if x.Token.Type == ytoken.StringType && isBigInt(x.Value) {
			d.emit(Event{Type: EventNumber, Pos: p, Number: x.Value})
			return nil
		}
		if x.Token.Type == ytoken.StringType {
			if f, ok := exponentFloat(x.Value); ok {
				d.emit(Event{Type: EventFloat, Pos: p, Float: f})
				return nil
			}
		}
		if d.opts.format.IsJSON() && x.Token.Type != ytoken.DoubleQuoteType {
			return &Error{Msg: fmt.Sprintf("invalid JSON value %q", x.Value), Pos: p}
		}
		d.emit(Event{Type: EventString, Pos: p, String: x.Value})
	case *ast.LiteralNode:
		d.emit(Event{Type: EventString, Pos: p, String: x.Value.Value})
	case *ast.IntegerNode:
		d.emit(intEvent(x, p))
	case *ast.FloatNode:
		d.emit(Event{Type: EventFloat, Pos: p, Float: x.Value})
	case *ast.InfinityNode:
		d.emit(Event{Type: EventFloat, Pos: p, Float: x.Value})
	case *ast.NanNode:
		d.emit(Event{Type: EventFloat, Pos: p, Float: math.NaN()})

	case *ast.TagNode:
		return d.walkTagged(x)
	case *ast.AnchorNode:
		if x.Value == nil {
			d.emit(Event{Type: EventNull, Pos: p})
			return nil
		}
		return d.walk(x.Value)
	case *ast.MappingKeyNode:
		return d.walk(x.Value)
	case *ast.AliasNode:
		return &Error{Msg: "aliases are not supported", Pos: p}
	case *ast.MergeKeyNode:
		return &Error{Msg: "merge keys are not supported", Pos: p}
	default:
		return &Error{Msg: fmt.Sprintf("unsupported %s node", n.Type()), Pos: p}
	}
	return nil
}

func (d *Decoder) walkEntry(mv *ast.MappingValueNode) error {
	var k ast.Node
	if mv.Key != nil {
		k = mv.Key
	}
	key, err := d.keyString(k)
	if err != nil {
		return err
	}
	if d.opts.format.IsJSON() && (mv.Value == nil || isImplicitNull(mv.Value)) {
		return &Error{Msg: fmt.Sprintf("missing value for key %q", key), Pos: d.nodePos(k)}
	}
	d.emit(Event{Type: EventKey, Pos: d.nodePos(k), Key: key})
	if mv.Value == nil {
		d.emit(Event{Type: EventNull, Pos: d.pos(mv.Start)})
		return nil
	}
	return d.walk(mv.Value)
}

func (d *Decoder) keyString(k ast.Node) (string, error) {
	if k == nil {
		return "", &Error{Msg: "empty map key"}
	}
	switch x := k.(type) {
	case *ast.StringNode:
		if d.opts.format.IsJSON() && x.Token.Type != ytoken.DoubleQuoteType {
			return "", &Error{Msg: fmt.Sprintf("invalid JSON key %q", x.Value), Pos: d.nodePos(k)}
		}
		return x.Value, nil
	case *ast.MappingKeyNode:
		return d.keyString(x.Value)
	case *ast.TagNode:
		return d.keyString(x.Value)
	case *ast.AnchorNode:
		return d.keyString(x.Value)
	case *ast.MergeKeyNode:
		return "", &Error{Msg: "merge keys are not supported", Pos: d.nodePos(k)}
	case *ast.MappingNode, *ast.SequenceNode, *ast.AliasNode:
		return "", &Error{Msg: "map keys must be scalars", Pos: d.nodePos(k)}
	}
	if d.opts.format.IsJSON() {
		return "", &Error{Msg: "JSON keys must be strings", Pos: d.nodePos(k)}
	}
	tk := k.GetToken()
	if tk == nil {
		return "", &Error{Msg: "empty map key"}
	}
	return tk.Value, nil
}

// walkTagged applies the core schema string tag to scalars and otherwise
// ignores tags.
func (d *Decoder) walkTagged(x *ast.TagNode) error {
	if x.Value == nil {
		d.emit(Event{Type: EventNull, Pos: d.pos(x.Start)})
		return nil
	}
	if x.Start != nil && x.Start.Value == "!!str" {
		switch v := x.Value.(type) {
		case *ast.MappingNode, *ast.SequenceNode:
		case *ast.StringNode:
			d.emit(Event{Type: EventString, Pos: d.nodePos(v), String: v.Value})
			return nil
		default:
			if tk := v.GetToken(); tk != nil {
				d.emit(Event{Type: EventString, Pos: d.nodePos(v), String: tk.Value})
				return nil
			}
		}
	}
	return d.walk(x.Value)
}

func intEvent(x *ast.IntegerNode, p token.Pos) Event {
	switch v := x.Value.(type) {
	case int64:
		return Event{Type: EventInt, Pos: p, Int: v}
	case uint64:
		if v <= math.MaxInt64 {
			return Event{Type: EventInt, Pos: p, Int: int64(v)}
		}
	case int:
		return Event{Type: EventInt, Pos: p, Int: int64(v)}
	}
	return Event{Type: EventNumber, Pos: p, Number: x.Token.Value}
}

// isImplicitNull reports whether n is a null the YAML parser filled in for
// an absent value.
func isImplicitNull(n ast.Node) bool {
	x, ok := n.(*ast.NullNode)
	return ok && x.Token != nil && x.Token.Type == ytoken.ImplicitNullType
}

// isBigInt reports whether a plain scalar is an integer literal too large
// for 64 bits.
func isBigInt(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if len(s) < 19 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// exponentFloat parses plain scalars such as 1e21, which the YAML scanner
// leaves as strings because they have no decimal point.
func exponentFloat(s string) (float64, bool) {
	t := strings.TrimPrefix(s, "-")
	if t == "" || t[0] < '0' || t[0] > '9' || !strings.ContainsAny(t, "eE") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// checkJSONRoot rejects YAML block style at the top of JSON input.
func checkJSONRoot(root ast.Node, d *Decoder) error {
	switch x := root.(type) {
	case *ast.MappingNode:
		if x.IsFlowStyle {
			return nil
		}
	case *ast.SequenceNode:
		if x.IsFlowStyle {
			return nil
		}
	case *ast.MappingValueNode:
	case *ast.TagNode, *ast.AnchorNode, *ast.AliasNode, *ast.LiteralNode:
	default:
		return nil
	}
	return &Error{Msg: "not JSON: YAML syntax at top level", Pos: d.nodePos(root)}
}
