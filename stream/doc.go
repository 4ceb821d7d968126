// Package stream provides structural events for parsed documents.
//
// A document is a depth-first sequence of events: BeginObject, Key and
// EndObject for maps, BeginArray and EndArray for sequences, and one event
// per scalar. Every event carries the position of the token it stems from.
//
// Decoder produces events from JSON or YAML text. An EventSink, such as the
// metadata builder, consumes them:
//
//	dec := stream.NewDecoder(r, stream.WithFormat(format.JSONFormat))
//	err := stream.Copy(sink, dec)
package stream
