// Package patch edits values with JSON patches while keeping their
// metadata.
//
// A patch which keeps the shape of a value (replacing scalars, say) leaves
// every identifier and location in place. A patch which changes the shape
// (adding a key, removing an element) cannot be reconciled with the
// existing metadata and is reported as a rich.ShapeMismatch.
package patch
