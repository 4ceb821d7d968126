// Package parse parses JSON and YAML text into values paired with their
// provenance metadata.
//
// # Usage
//
//	// Parse JSON text
//	r, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//	mark, _ := rich.Find(r.Meta, "age") // id and line:col of 30
//
//	// Parse a file, directed by a shape
//	r, err := parse.ParseFile("point.yaml", parse.ParseShape(pointShape))
//
//	// Only the value
//	node, err := parse.ParseValue(data, parse.ParseYAML())
//
// # Related Packages
//
//   - github.com/signadot/go-rich/stream - positioned event decoding
//   - github.com/signadot/go-rich/build - metadata construction
//   - github.com/signadot/go-rich/rich - metadata trees
package parse
