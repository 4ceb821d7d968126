package rich

import "github.com/signadot/go-rich/ir"

// Inline is the internal representation of a value: every child carries its
// own mark next to it. It has the same layout as ir.Node, with Values
// wrapped and keys marked.
type Inline struct {
	Type    ir.Type
	Name    string
	Variant string

	// Keys names Values for maps, products and named sum payloads. Only
	// map keys carry a Mark, and only when key metadata was collected.
	Keys   []Key
	Values []Rich[*Inline, Mark]

	// Scalar is the value of a primitive.
	Scalar *ir.Node
}

type Key struct {
	Name string
	Mark *Mark
}

// Plain returns the value of in without any metadata.
func (in *Inline) Plain() *ir.Node {
	return Split(in).Value
}
