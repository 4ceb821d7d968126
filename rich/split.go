package rich

import "github.com/signadot/go-rich/ir"

// Split moves the marks of in's children into a metadata tree. The
// returned value has no metadata and the Nested mirrors its shape.
func Split(in *Inline) Rich[*ir.Node, Nested] {
	switch in.Type.Kind() {
	case ir.PrimitiveKind:
		scalar := in.Scalar
		if scalar == nil {
			scalar = ir.Null()
		}
		return MapMeta(Leaf(scalar.Clone()), func(Unit) Nested { return Unit{} })

	case ir.SequenceKind:
		node := &ir.Node{Type: ir.ArrayType, Values: make([]*ir.Node, len(in.Values))}
		elems := make([]Meta, len(in.Values))
		for i := range in.Values {
			node.Values[i], elems[i] = DeepSplit(in.Values[i]).Unpack()
		}
		return New[*ir.Node, Nested](node, SequenceMeta{Elems: elems})

	case ir.MapKind:
		node := &ir.Node{Type: ir.ObjectType}
		splitNamed(node, in)
		entries := make([]Entry, len(in.Values))
		for i := range in.Values {
			entries[i] = Entry{Key: in.Keys[i].Name, Value: DeepSplit(in.Values[i]).Meta}
			if km := in.Keys[i].Mark; km != nil {
				k := *km
				entries[i].KeyMark = &k
			}
		}
		return New[*ir.Node, Nested](node, AssocMeta{Entries: entries})

	case ir.ProductKind:
		node := &ir.Node{Type: ir.StructType, Name: in.Name}
		fields := splitNamed(node, in)
		return New[*ir.Node, Nested](node, ProductMeta{Fields: fields})

	case ir.SumKind:
		node := &ir.Node{Type: ir.UnionType, Name: in.Name, Variant: in.Variant}
		var payload []FieldMeta
		if in.Keys != nil {
			payload = splitNamed(node, in)
		} else if len(in.Values) != 0 {
			node.Values = make([]*ir.Node, len(in.Values))
			payload = make([]FieldMeta, len(in.Values))
			for i := range in.Values {
				node.Values[i], payload[i].Meta = DeepSplit(in.Values[i]).Unpack()
			}
		}
		return New[*ir.Node, Nested](node, SumMeta{Variant: in.Variant, Payload: payload})
	}
	panic("rich: split of unknown kind " + in.Type.Kind().String())
}

func splitNamed(node *ir.Node, in *Inline) []FieldMeta {
	node.Fields = make([]*ir.Node, len(in.Values))
	node.Values = make([]*ir.Node, len(in.Values))
	fields := make([]FieldMeta, len(in.Values))
	for i := range in.Values {
		name := in.Keys[i].Name
		node.Fields[i] = ir.FromString(name)
		fields[i].Name = name
		node.Values[i], fields[i].Meta = DeepSplit(in.Values[i]).Unpack()
	}
	return fields
}

// DeepSplit converts the internal representation of a whole tree, root mark
// included, to the external one.
func DeepSplit(r Rich[*Inline, Mark]) Rich[*ir.Node, Meta] {
	return SplitWith(r, Split)
}
