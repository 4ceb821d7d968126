package rich

import "github.com/signadot/go-rich/ir"

// Nested is the metadata of the children of a node. Its dynamic type is
// one of Unit, ProductMeta, SequenceMeta, AssocMeta or SumMeta and matches
// the Kind of the value it describes.
type Nested interface {
	Kind() ir.Kind
	nested()
}

// Unit is the metadata of a primitive value. It has no content.
type Unit struct{}

// FieldMeta is the metadata of one named (or, with an empty Name,
// positional) child.
type FieldMeta struct {
	Name string
	Meta Meta
}

// ProductMeta holds one entry per field, in declaration order.
type ProductMeta struct {
	Fields []FieldMeta
}

type SequenceMeta struct {
	Elems []Meta
}

// Entry is the metadata of one key/value pair of a map. KeyMark is nil when
// key metadata was not collected.
type Entry struct {
	Key     string
	KeyMark *Mark
	Value   Meta
}

// AssocMeta holds one entry per map key, in the map's order.
type AssocMeta struct {
	Entries []Entry
}

// SumMeta holds the metadata of the active variant's payload. The variant
// tag itself carries no metadata.
type SumMeta struct {
	Variant string
	Payload []FieldMeta
}

func (Unit) Kind() ir.Kind         { return ir.PrimitiveKind }
func (ProductMeta) Kind() ir.Kind  { return ir.ProductKind }
func (SequenceMeta) Kind() ir.Kind { return ir.SequenceKind }
func (AssocMeta) Kind() ir.Kind    { return ir.MapKind }
func (SumMeta) Kind() ir.Kind      { return ir.SumKind }

func (Unit) nested()         {}
func (ProductMeta) nested()  {}
func (SequenceMeta) nested() {}
func (AssocMeta) nested()    {}
func (SumMeta) nested()      {}

func (p ProductMeta) Field(name string) (Meta, bool) {
	return lookupField(p.Fields, name)
}

func (a AssocMeta) Lookup(key string) (*Entry, bool) {
	for i := range a.Entries {
		if a.Entries[i].Key == key {
			return &a.Entries[i], true
		}
	}
	return nil, false
}

func (s SumMeta) Field(name string) (Meta, bool) {
	return lookupField(s.Payload, name)
}

func lookupField(fs []FieldMeta, name string) (Meta, bool) {
	for i := range fs {
		if fs[i].Name == name {
			return fs[i].Meta, true
		}
	}
	return Meta{}, false
}
