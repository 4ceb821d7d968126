package rich

import (
	"github.com/signadot/go-rich/ir"
)

// View navigates a value and its external metadata together. Where the
// metadata does not follow the value (it was detached and the value changed)
// the view reports a zero Mark instead of failing.
type View struct {
	value *ir.Node
	meta  Meta
}

func NewView(r Rich[*ir.Node, Meta]) View {
	return View{value: r.Value, meta: r.Meta}
}

func (v View) Value() *ir.Node { return v.value }

func (v View) Mark() Mark { return v.meta.Mark }

func (v View) Meta() Meta { return v.meta }

// Exists reports whether the view points at a value.
func (v View) Exists() bool { return v.value != nil }

// Get returns the view of a named child: a map entry, a product field or a
// named variant payload field.
func (v View) Get(name string) View {
	if v.value == nil {
		return View{}
	}
	res := View{value: ir.Get(v.value, name)}
	if res.value == nil {
		return View{}
	}
	res.meta, _ = childMeta(v.meta, ir.Selector{Field: name})
	return res
}

// Index returns the view of a sequence element or positional payload.
func (v View) Index(i int) View {
	if v.value == nil || v.value.Named() || i < 0 || i >= len(v.value.Values) {
		return View{}
	}
	res := View{value: v.value.Values[i]}
	res.meta, _ = childMeta(v.meta, ir.Selector{Index: i, IsIndex: true})
	return res
}

// KeyMark returns the mark of a map key.
func (v View) KeyMark(key string) Mark {
	if a, ok := v.meta.Nested.(AssocMeta); ok {
		if e, ok := a.Lookup(key); ok && e.KeyMark != nil {
			return *e.KeyMark
		}
	}
	return Mark{}
}

// Lookup follows a kinded path such as "items[2].name".
func (v View) Lookup(path string) (View, error) {
	sels, err := ir.SplitPath(path)
	if err != nil {
		return View{}, err
	}
	res := v
	for _, sel := range sels {
		if sel.IsIndex {
			res = res.Index(sel.Index)
		} else {
			res = res.Get(sel.Field)
		}
		if !res.Exists() {
			return View{}, &ir.PathError{Path: path, Msg: "no value at " + sel.String()}
		}
	}
	return res, nil
}

func childMeta(m Meta, sel ir.Selector) (Meta, bool) {
	switch n := m.Nested.(type) {
	case ProductMeta:
		if !sel.IsIndex {
			return n.Field(sel.Field)
		}
	case AssocMeta:
		if !sel.IsIndex {
			if e, ok := n.Lookup(sel.Field); ok {
				return e.Value, true
			}
		}
	case SequenceMeta:
		if sel.IsIndex && sel.Index < len(n.Elems) {
			return n.Elems[sel.Index], true
		}
	case SumMeta:
		if !sel.IsIndex {
			return n.Field(sel.Field)
		}
		if sel.Index < len(n.Payload) && n.Payload[sel.Index].Name == "" {
			return n.Payload[sel.Index].Meta, true
		}
	}
	return Meta{}, false
}

// Find returns the mark of the node at path, without needing the value.
func Find(m Meta, path string) (Mark, bool) {
	sels, err := ir.SplitPath(path)
	if err != nil {
		return Mark{}, false
	}
	for _, sel := range sels {
		var ok bool
		m, ok = childMeta(m, sel)
		if !ok {
			return Mark{}, false
		}
	}
	return m.Mark, true
}

// Annotation is one mark of a metadata tree with the path of the node (or
// map key) it belongs to.
type Annotation struct {
	Path    string
	Kind    ir.Kind
	Key     bool
	Variant string
	Mark    Mark
}

// Annotations lists every mark of m in pre-order. A map key's annotation
// comes right before the annotations of its value, so for a freshly parsed
// document the identifiers are strictly increasing.
func Annotations(m Meta) []Annotation {
	var res []Annotation
	return annotate(res, "", m)
}

func annotate(res []Annotation, path string, m Meta) []Annotation {
	a := Annotation{Path: path, Kind: ir.PrimitiveKind, Mark: m.Mark}
	if m.Nested != nil {
		a.Kind = m.Nested.Kind()
	}
	switch n := m.Nested.(type) {
	case SumMeta:
		a.Variant = n.Variant
		res = append(res, a)
		for i := range n.Payload {
			p := &n.Payload[i]
			if p.Name == "" {
				res = annotate(res, ir.IndexPath(path, i), p.Meta)
			} else {
				res = annotate(res, ir.FieldPath(path, p.Name), p.Meta)
			}
		}
		return res
	case AssocMeta:
		res = append(res, a)
		for i := range n.Entries {
			e := &n.Entries[i]
			p := ir.FieldPath(path, e.Key)
			if e.KeyMark != nil {
				res = append(res, Annotation{Path: p, Kind: ir.PrimitiveKind, Key: true, Mark: *e.KeyMark})
			}
			res = annotate(res, p, e.Value)
		}
		return res
	case SequenceMeta:
		res = append(res, a)
		for i := range n.Elems {
			res = annotate(res, ir.IndexPath(path, i), n.Elems[i])
		}
		return res
	case ProductMeta:
		res = append(res, a)
		for i := range n.Fields {
			res = annotate(res, ir.FieldPath(path, n.Fields[i].Name), n.Fields[i].Meta)
		}
		return res
	}
	return append(res, a)
}
