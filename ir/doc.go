// Package ir provides the plain value representation of parsed documents.
//
// # Overview
//
// A Node is a recursive tagged union: the Type field selects which of the
// remaining fields carry the value. Nodes carry no identifiers, positions or
// other provenance; that information lives in a parallel metadata tree (see
// package rich) whose shape mirrors the node tree.
//
// # Node Types
//
//   - NullType, BoolType, NumberType, StringType: primitive values
//   - ArrayType: ordered sequence in Values
//   - ObjectType: associative map; Fields[i] is the string key of Values[i]
//   - StructType: product of named fields; Name is the registered type name,
//     Fields[i] names Values[i] in declaration order
//   - UnionType: sum; Name is the type name and Variant the active tag. The
//     payload is positional (Values only) or named (Fields and Values).
//
// Each type belongs to one Kind, which is what the metadata algebra
// dispatches on.
//
// # Construction
//
//	ir.FromKeyVals([]ir.KeyVal{
//		{Key: "str", Val: ir.FromString("Hello")},
//		{Key: "num", Val: ir.FromInt(42)},
//	})
//
// FromMap produces an object with sorted keys, FromKeyVals keeps the given
// order.
package ir
