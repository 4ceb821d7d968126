package rich

import (
	"fmt"

	"github.com/signadot/go-rich/ir"
)

// Merge attaches the metadata m to the plain value v, producing the
// internal representation. It fails with a *ShapeMismatch, reported at the
// first disagreeing node in depth-first order, when v does not have the
// shape m describes.
func Merge(v *ir.Node, m Meta) (Rich[*Inline, Mark], error) {
	return mergeMeta("", v, m)
}

// MergeNested attaches the metadata of v's children.
func MergeNested(v *ir.Node, n Nested) (*Inline, error) {
	return mergeNested("", v, n)
}

func mergeMeta(path string, v *ir.Node, m Meta) (Rich[*Inline, Mark], error) {
	return MergeWith(v, m, func(v *ir.Node, n Nested) (*Inline, error) {
		return mergeNested(path, v, n)
	})
}

func mergeNested(path string, v *ir.Node, n Nested) (*Inline, error) {
	if v == nil {
		v = ir.Null()
	}
	if n == nil {
		n = Unit{}
	}
	if err := checkKind(path, v, n); err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case Unit:
		return &Inline{Type: v.Type, Scalar: v.Clone()}, nil

	case SequenceMeta:
		if err := checkLength(path, len(n.Elems), len(v.Values)); err != nil {
			return nil, err
		}
		res := &Inline{Type: ir.ArrayType, Values: make([]Rich[*Inline, Mark], len(v.Values))}
		for i := range v.Values {
			c, err := mergeMeta(ir.IndexPath(path, i), v.Values[i], n.Elems[i])
			if err != nil {
				return nil, err
			}
			res.Values[i] = c
		}
		return res, nil

	case AssocMeta:
		metaKeys := make([]string, len(n.Entries))
		for i := range n.Entries {
			metaKeys[i] = n.Entries[i].Key
		}
		perm, err := matchKeys(path, metaKeys, v.Keys())
		if err != nil {
			return nil, err
		}
		res := &Inline{
			Type:   ir.ObjectType,
			Keys:   make([]Key, len(v.Values)),
			Values: make([]Rich[*Inline, Mark], len(v.Values)),
		}
		for i, j := range perm {
			e := &n.Entries[j]
			res.Keys[i].Name = e.Key
			if e.KeyMark != nil {
				k := *e.KeyMark
				res.Keys[i].Mark = &k
			}
			c, err := mergeMeta(ir.FieldPath(path, e.Key), v.Values[i], e.Value)
			if err != nil {
				return nil, err
			}
			res.Values[i] = c
		}
		return res, nil

	case ProductMeta:
		checkFields(path, "product "+v.Name, n.Fields, v)
		res := &Inline{Type: ir.StructType, Name: v.Name}
		if err := mergeNamed(path, res, n.Fields, v); err != nil {
			return nil, err
		}
		return res, nil

	case SumMeta:
		if err := checkVariant(path, n.Variant, v.Variant); err != nil {
			return nil, err
		}
		res := &Inline{Type: ir.UnionType, Name: v.Name, Variant: v.Variant}
		if v.Fields != nil {
			checkFields(path, "variant "+v.Variant, n.Payload, v)
			if err := mergeNamed(path, res, n.Payload, v); err != nil {
				return nil, err
			}
			return res, nil
		}
		if len(n.Payload) != 0 && n.Payload[0].Name != "" {
			checkFields(path, "variant "+v.Variant, n.Payload, v)
		}
		if len(n.Payload) != len(v.Values) {
			panic(fmt.Sprintf("rich: variant %s at %q: %d payload values, metadata has %d",
				v.Variant, path, len(v.Values), len(n.Payload)))
		}
		if len(v.Values) != 0 {
			res.Values = make([]Rich[*Inline, Mark], len(v.Values))
		}
		for i := range v.Values {
			c, err := mergeMeta(ir.IndexPath(path, i), v.Values[i], n.Payload[i].Meta)
			if err != nil {
				return nil, err
			}
			res.Values[i] = c
		}
		return res, nil
	}
	panic(fmt.Sprintf("rich: unknown metadata %T", n))
}

func mergeNamed(path string, res *Inline, fs []FieldMeta, v *ir.Node) error {
	res.Keys = make([]Key, len(fs))
	res.Values = make([]Rich[*Inline, Mark], len(fs))
	for i := range fs {
		res.Keys[i].Name = fs[i].Name
		c, err := mergeMeta(ir.FieldPath(path, fs[i].Name), v.Values[i], fs[i].Meta)
		if err != nil {
			return err
		}
		res.Values[i] = c
	}
	return nil
}
