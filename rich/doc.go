// Package rich attaches provenance metadata to values.
//
// # Representations
//
// A value with metadata can be held two ways:
//
//   - internal: an *Inline tree, where every child sits next to its Mark
//   - external: a plain *ir.Node plus a Meta tree of the same shape
//
// Split and DeepSplit convert internal to external, Merge converts back and
// fails with a *ShapeMismatch when the value no longer has the shape the
// metadata describes. Neither generates identifiers or locations.
//
// # Metadata
//
// Meta is a node's Mark (ID and Location) together with a Nested value
// whose dynamic type follows the node's kind:
//
//	Unit          primitive
//	ProductMeta   struct fields, declaration order
//	SequenceMeta  array elements
//	AssocMeta     map entries; keys may carry their own Mark
//	SumMeta       active variant and its payload
//
// # Identifiers
//
// A Scope issues IDs for one session. IDs start at 1 and increase in
// document order; NoID (0) is never issued.
//
// # Typed values
//
// Rich, SplitWith, MergeWith and Leaf are generic so Go types can define
// their own split and merge once per type:
//
//	func splitMascot(m Mascot) rich.Rich[Plain, MascotMeta] {
//		name := rich.SplitWith(m.Name, rich.Leaf[string])
//		...
//	}
package rich
