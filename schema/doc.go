// Package schema describes the expected shape of a document.
//
// Shapes direct decoding: the builder uses them to decide whether an object
// is a map, a product (struct) or a sum (union), and to check scalar types.
// Products and sums are registered explicitly:
//
//	point := schema.Struct("Point").
//		Field("x", schema.Int()).
//		Field("y", schema.Int())
//	op := schema.Union("Op").
//		Variant("Delete", schema.Bool()).
//		Variant("Update", schema.Struct("Update").Field("path", schema.String())).
//		Unit("Noop")
//
// Sums are externally tagged on the wire: a unit variant is written as its
// name, other variants as an object with the variant name as single key.
// A struct payload becomes the named payload of the variant.
package schema
