// Package gomap maps between IR nodes and Go values.
//
// # Usage
//
//	type Point struct {
//	    X     int     `rich:"field=x"`
//	    Y     float64 `rich:"field=y"`
//	    Cache []int   `rich:"omit"`
//	}
//
//	shape, err := gomap.ShapeOf(reflect.TypeOf(Point{}))
//	r, err := parse.Parse(data, parse.ParseShape(shape))
//
//	var p Point
//	err = gomap.FromIR(r.Value, &p)
//	p.X++
//	node, err := gomap.ToIR(p)
//	in, err := rich.Merge(node, r.Meta) // same ids and locations as before
//
// Structs map to product values whose fields follow the declaration order
// of the Go struct, so a value built from a struct merges with metadata
// parsed against ShapeOf the same struct.
//
// # Related Packages
//
//   - github.com/signadot/go-rich/ir - IR representation
//   - github.com/signadot/go-rich/schema - shapes
package gomap
