package build

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/go-rich/debug"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"
	"github.com/signadot/go-rich/schema"
	"github.com/signadot/go-rich/stream"
)

// State is the lifecycle state of a Builder.
type State int

const (
	Idle State = iota
	InProgress
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in progress"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

type frameKind int

const (
	mapFrame frameKind = iota
	seqFrame
	tupleFrame
	structFrame
	unionFrame
)

// frame is an open composite value.
type frame struct {
	kind frameKind
	mark rich.Mark
	// inline frames are the payload of the enclosing union and produce no
	// node of their own.
	inline bool

	elem    schema.Shape
	tuple   *schema.TupleShape
	st      *schema.StructShape
	union   *schema.UnionShape
	variant *schema.Variant

	keys     []string
	keyMarks []*rich.Mark
	seen     map[string]bool
	values   []*ir.Node
	metas    []rich.Meta

	key     string
	keyMark *rich.Mark
	field   int
	set     []bool

	// union payload
	named   bool
	payload bool
}

// Builder assembles a value and its metadata from a stream of events. It
// implements stream.EventSink and stream.Done.
type Builder struct {
	opts  *buildOpts
	state State
	st    *stream.State
	stack []*frame
	res   rich.Rich[*ir.Node, rich.Meta]
	err   error

	skipNext  bool
	skipDepth int
}

// New creates a Builder.
func New(opts ...BuildOption) *Builder {
	return &Builder{
		opts: newOpts(opts),
		st:   stream.NewState(),
	}
}

// Build reads a single document from r.
func Build(r stream.EventReader, opts ...BuildOption) (rich.Rich[*ir.Node, rich.Meta], error) {
	b := New(opts...)
	if err := stream.Copy(b, r); err != nil {
		if b.state != Failed {
			b.failReader(err)
		}
	}
	return b.Result()
}

// State returns the lifecycle state of b.
func (b *Builder) State() State { return b.state }

// Done reports whether b has received a complete document.
func (b *Builder) Done() bool { return b.state == Done }

// Result returns the built value and metadata. It is an error to call
// Result before a complete document was written.
func (b *Builder) Result() (rich.Rich[*ir.Node, rich.Meta], error) {
	switch b.state {
	case Done:
		return b.res, nil
	case Failed:
		return rich.Rich[*ir.Node, rich.Meta]{}, b.err
	}
	b.fail(nil, io.ErrUnexpectedEOF)
	return rich.Rich[*ir.Node, rich.Meta]{}, b.err
}

// WriteEvent processes the next event of the document.
func (b *Builder) WriteEvent(ev *stream.Event) error {
	switch b.state {
	case Failed:
		return b.err
	case Done:
		return b.fail(ev, errors.New("event after end of document"))
	case Idle:
		b.state = InProgress
	}
	if err := b.st.ProcessEvent(ev); err != nil {
		return b.fail(ev, err)
	}
	if debug.Build() {
		debug.Logf("build %s at %s (%s)\n", ev.Type, ev.Pos, b.st.CurrentPath())
	}
	if b.skip(ev) {
		return nil
	}
	var err error
	switch ev.Type {
	case stream.EventKey:
		err = b.onKey(ev)
	case stream.EventEndObject, stream.EventEndArray:
		err = b.onEnd(ev)
	default:
		err = b.onValue(ev)
	}
	if err != nil {
		if b.state == Failed {
			return b.err
		}
		return b.fail(ev, err)
	}
	return nil
}

// skip consumes the value of an unknown struct field.
func (b *Builder) skip(ev *stream.Event) bool {
	if b.skipDepth > 0 {
		switch ev.Type {
		case stream.EventBeginObject, stream.EventBeginArray:
			b.skipDepth++
		case stream.EventEndObject, stream.EventEndArray:
			b.skipDepth--
		}
		return true
	}
	if !b.skipNext || !ev.IsValueStart() {
		return false
	}
	b.skipNext = false
	if ev.Type == stream.EventBeginObject || ev.Type == stream.EventBeginArray {
		b.skipDepth = 1
	}
	return true
}

func (b *Builder) fail(ev *stream.Event, err error) error {
	de := &rich.DecodeError{Path: b.st.CurrentPath(), Err: err}
	if ev != nil {
		de.Loc = b.loc(ev)
	}
	b.failWith(de)
	return b.err
}

func (b *Builder) failReader(err error) {
	de := &rich.DecodeError{Path: b.st.CurrentPath(), Err: err}
	var se *stream.Error
	if errors.As(err, &se) {
		de.Loc = rich.Location{Source: b.opts.source, Pos: se.Pos}
	}
	b.failWith(de)
}

func (b *Builder) failWith(err error) {
	b.state = Failed
	b.err = err
	b.stack = nil
	b.res = rich.Rich[*ir.Node, rich.Meta]{}
	if debug.Build() {
		debug.Logf("build failed: %v\n", err)
	}
}

func (b *Builder) loc(ev *stream.Event) rich.Location {
	return rich.Location{Source: b.opts.source, Pos: ev.Pos}
}

func (b *Builder) mark(ev *stream.Event) (rich.Mark, error) {
	id, err := b.opts.scope.Next()
	if err != nil {
		b.failWith(fmt.Errorf("build at %q: %w", b.st.CurrentPath(), err))
		return rich.Mark{}, err
	}
	return rich.Mark{ID: id, Loc: b.loc(ev)}, nil
}

func (b *Builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) onKey(ev *stream.Event) error {
	f := b.top()
	switch f.kind {
	case mapFrame:
		if f.seen[ev.Key] {
			return fmt.Errorf("duplicate key %q", ev.Key)
		}
		f.seen[ev.Key] = true
		f.key = ev.Key
		f.keyMark = nil
		if b.opts.keyMeta {
			m, err := b.mark(ev)
			if err != nil {
				return err
			}
			f.keyMark = &m
		}
	case structFrame:
		i, _, ok := f.st.Lookup(ev.Key)
		if !ok {
			b.skipNext = true
			return nil
		}
		if f.set[i] {
			return fmt.Errorf("duplicate field %q of %s", ev.Key, f.st.Name)
		}
		f.field = i
	case unionFrame:
		if f.variant != nil {
			return fmt.Errorf("%s: more than one variant given", f.union.Name)
		}
		v, ok := f.union.Lookup(ev.Key)
		if !ok {
			return fmt.Errorf("%s: unknown variant %q", f.union.Name, ev.Key)
		}
		if v.Payload == nil {
			return fmt.Errorf("%s: unit variant %q must be given as a string", f.union.Name, ev.Key)
		}
		f.variant = v
	default:
		return errors.New("key not in object")
	}
	return nil
}

// expected returns the shape of the next value and whether it is the
// inline payload of a union.
func (b *Builder) expected() (schema.Shape, bool, error) {
	f := b.top()
	if f == nil {
		return b.opts.shape, false, nil
	}
	switch f.kind {
	case mapFrame, seqFrame:
		return f.elem, false, nil
	case tupleFrame:
		if len(f.values) >= len(f.tuple.Elems) {
			return nil, false, fmt.Errorf("too many elements for %s", f.tuple)
		}
		return f.tuple.Elems[len(f.values)], false, nil
	case structFrame:
		return f.st.Fields[f.field].Shape, false, nil
	case unionFrame:
		s, err := resolve(f.variant.Payload)
		if err != nil {
			return nil, false, err
		}
		switch s.(type) {
		case *schema.StructShape, *schema.TupleShape:
			return s, true, nil
		}
		return s, false, nil
	}
	return nil, false, errors.New("unexpected value")
}

func resolve(s schema.Shape) (schema.Shape, error) {
	for {
		ref, ok := s.(*schema.RefShape)
		if !ok {
			return s, nil
		}
		n, err := ref.Resolve()
		if err != nil {
			return nil, err
		}
		s = n
	}
}

func (b *Builder) onValue(ev *stream.Event) error {
	s, inline, err := b.expected()
	if err != nil {
		return err
	}
	if s, err = resolve(s); err != nil {
		return err
	}
	if ns, ok := s.(*schema.NullableShape); ok {
		if ev.Type == stream.EventNull {
			s = schema.Null()
		} else if s, err = resolve(ns.Elem); err != nil {
			return err
		}
	}
	if inline {
		return b.beginInline(ev, s)
	}
	m, err := b.mark(ev)
	if err != nil {
		return err
	}
	switch ev.Type {
	case stream.EventBeginObject:
		f := &frame{mark: m}
		switch x := s.(type) {
		case schema.AnyShape:
			f.kind, f.elem, f.seen = mapFrame, x, map[string]bool{}
		case *schema.MapShape:
			f.kind, f.elem, f.seen = mapFrame, x.Elem, map[string]bool{}
		case *schema.StructShape:
			f.kind, f.st = structFrame, x
			f.values = make([]*ir.Node, len(x.Fields))
			f.metas = make([]rich.Meta, len(x.Fields))
			f.set = make([]bool, len(x.Fields))
		case *schema.UnionShape:
			f.kind, f.union = unionFrame, x
		default:
			return fmt.Errorf("expected %s, got object", s)
		}
		b.stack = append(b.stack, f)
		return nil
	case stream.EventBeginArray:
		f := &frame{mark: m}
		switch x := s.(type) {
		case schema.AnyShape:
			f.kind, f.elem = seqFrame, x
		case *schema.SeqShape:
			f.kind, f.elem = seqFrame, x.Elem
		case *schema.TupleShape:
			f.kind, f.tuple = tupleFrame, x
		default:
			return fmt.Errorf("expected %s, got array", s)
		}
		b.stack = append(b.stack, f)
		return nil
	}
	if u, ok := s.(*schema.UnionShape); ok {
		node, err := unitVariant(ev, u)
		if err != nil {
			return err
		}
		return b.attach(node, rich.Wrap[rich.Nested](m, rich.SumMeta{Variant: node.Variant}))
	}
	node, err := scalar(ev, s)
	if err != nil {
		return err
	}
	return b.attach(node, rich.Wrap[rich.Nested](m, rich.Unit{}))
}

// beginInline opens the payload of a union variant with named fields or
// positional values.
func (b *Builder) beginInline(ev *stream.Event, s schema.Shape) error {
	f := &frame{inline: true}
	switch x := s.(type) {
	case *schema.StructShape:
		if ev.Type != stream.EventBeginObject {
			return fmt.Errorf("expected %s, got %s", x, valueName(ev))
		}
		f.kind, f.st = structFrame, x
		f.values = make([]*ir.Node, len(x.Fields))
		f.metas = make([]rich.Meta, len(x.Fields))
		f.set = make([]bool, len(x.Fields))
	case *schema.TupleShape:
		if ev.Type != stream.EventBeginArray {
			return fmt.Errorf("expected %s, got %s", x, valueName(ev))
		}
		f.kind, f.tuple = tupleFrame, x
	}
	b.stack = append(b.stack, f)
	return nil
}

func (b *Builder) onEnd(ev *stream.Event) error {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	var (
		node   *ir.Node
		nested rich.Nested
	)
	switch f.kind {
	case mapFrame:
		kvs := make([]ir.KeyVal, len(f.keys))
		entries := make([]rich.Entry, len(f.keys))
		for i, k := range f.keys {
			kvs[i] = ir.KeyVal{Key: k, Val: f.values[i]}
			entries[i] = rich.Entry{Key: k, KeyMark: f.keyMarks[i], Value: f.metas[i]}
		}
		node = ir.FromKeyVals(kvs)
		nested = rich.AssocMeta{Entries: entries}
	case seqFrame:
		node = ir.FromSlice(f.values)
		nested = rich.SequenceMeta{Elems: f.metas}
	case tupleFrame:
		if len(f.values) != len(f.tuple.Elems) {
			return fmt.Errorf("expected %d elements for %s, got %d", len(f.tuple.Elems), f.tuple, len(f.values))
		}
		if f.inline {
			return b.attachPayload(false, nil, f.values, f.metas)
		}
		node = ir.FromSlice(f.values)
		nested = rich.SequenceMeta{Elems: f.metas}
	case structFrame:
		for i, ok := range f.set {
			if !ok {
				return fmt.Errorf("missing field %q of %s", f.st.Fields[i].Name, f.st.Name)
			}
		}
		names := make([]string, len(f.st.Fields))
		for i := range f.st.Fields {
			names[i] = f.st.Fields[i].Name
		}
		if f.inline {
			return b.attachPayload(true, names, f.values, f.metas)
		}
		kvs := make([]ir.KeyVal, len(names))
		fields := make([]rich.FieldMeta, len(names))
		for i, name := range names {
			kvs[i] = ir.KeyVal{Key: name, Val: f.values[i]}
			fields[i] = rich.FieldMeta{Name: name, Meta: f.metas[i]}
		}
		node = ir.FromStruct(f.st.Name, kvs)
		nested = rich.ProductMeta{Fields: fields}
	case unionFrame:
		if !f.payload {
			return fmt.Errorf("%s: missing variant", f.union.Name)
		}
		payload := make([]rich.FieldMeta, len(f.metas))
		for i := range f.metas {
			if f.named {
				payload[i].Name = f.keys[i]
			}
			payload[i].Meta = f.metas[i]
		}
		if f.named {
			kvs := make([]ir.KeyVal, len(f.keys))
			for i, k := range f.keys {
				kvs[i] = ir.KeyVal{Key: k, Val: f.values[i]}
			}
			node = ir.FromUnionFields(f.union.Name, f.variant.Name, kvs)
		} else {
			node = ir.FromUnion(f.union.Name, f.variant.Name, f.values...)
		}
		nested = rich.SumMeta{Variant: f.variant.Name, Payload: payload}
	}
	return b.attach(node, rich.Wrap(f.mark, nested))
}

// attachPayload completes the payload of the enclosing union.
func (b *Builder) attachPayload(named bool, names []string, values []*ir.Node, metas []rich.Meta) error {
	u := b.top()
	u.named = named
	u.keys = names
	u.values = values
	u.metas = metas
	u.payload = true
	return nil
}

func (b *Builder) attach(node *ir.Node, m rich.Meta) error {
	f := b.top()
	if f == nil {
		b.res = rich.New(node, m)
		b.state = Done
		if debug.Build() {
			debug.Logf("build done:\n%v%v", node, m)
		}
		return nil
	}
	switch f.kind {
	case mapFrame:
		f.keys = append(f.keys, f.key)
		f.keyMarks = append(f.keyMarks, f.keyMark)
		f.values = append(f.values, node)
		f.metas = append(f.metas, m)
		f.keyMark = nil
	case seqFrame, tupleFrame:
		f.values = append(f.values, node)
		f.metas = append(f.metas, m)
	case structFrame:
		f.values[f.field] = node
		f.metas[f.field] = m
		f.set[f.field] = true
	case unionFrame:
		if f.payload {
			return fmt.Errorf("%s: more than one variant given", f.union.Name)
		}
		f.values = []*ir.Node{node}
		f.metas = []rich.Meta{m}
		f.payload = true
	}
	return nil
}

func unitVariant(ev *stream.Event, u *schema.UnionShape) (*ir.Node, error) {
	if ev.Type != stream.EventString {
		return nil, fmt.Errorf("expected %s, got %s", u, valueName(ev))
	}
	v, ok := u.Lookup(ev.String)
	if !ok {
		return nil, fmt.Errorf("%s: unknown variant %q", u.Name, ev.String)
	}
	if v.Payload != nil {
		return nil, fmt.Errorf("%s: variant %q requires a payload", u.Name, ev.String)
	}
	return ir.FromUnion(u.Name, v.Name), nil
}

func scalar(ev *stream.Event, s schema.Shape) (*ir.Node, error) {
	var accept schema.Accept
	switch ev.Type {
	case stream.EventNull:
		accept = schema.AcceptNull
	case stream.EventBool:
		accept = schema.AcceptBool
	case stream.EventInt, stream.EventNumber:
		accept = schema.AcceptInt
	case stream.EventFloat:
		accept = schema.AcceptFloat
	case stream.EventString:
		accept = schema.AcceptString
	}
	toFloat := false
	switch x := s.(type) {
	case schema.AnyShape:
	case *schema.ScalarShape:
		if x.Accept&accept == 0 {
			return nil, fmt.Errorf("expected %s, got %s", x, valueName(ev))
		}
		toFloat = x.ToFloat
	default:
		return nil, fmt.Errorf("expected %s, got %s", s, valueName(ev))
	}
	switch ev.Type {
	case stream.EventNull:
		return ir.Null(), nil
	case stream.EventBool:
		return ir.FromBool(ev.Bool), nil
	case stream.EventInt:
		if toFloat {
			return ir.FromFloat(float64(ev.Int)), nil
		}
		return ir.FromInt(ev.Int), nil
	case stream.EventNumber:
		if toFloat {
			f, err := strconv.ParseFloat(ev.Number, 64)
			if err != nil {
				return nil, err
			}
			return ir.FromFloat(f), nil
		}
		return ir.FromNumber(ev.Number), nil
	case stream.EventFloat:
		return ir.FromFloat(ev.Float), nil
	default:
		return ir.FromString(ev.String), nil
	}
}

func valueName(ev *stream.Event) string {
	switch ev.Type {
	case stream.EventBeginObject:
		return "object"
	case stream.EventBeginArray:
		return "array"
	case stream.EventInt, stream.EventNumber:
		return "int"
	}
	return strings.ToLower(ev.Type.String())
}
