// Package build assembles values and their metadata from event streams.
//
// A Builder consumes the events of one document and assigns every value a
// Mark: a fresh identifier drawn from a rich.Scope and the location of the
// value in the source. Identifiers are assigned in document order on entry,
// so a composite's identifier precedes its children's, and a map key's
// identifier immediately precedes its value's.
//
// Building is directed by a schema.Shape. Objects decoded against a struct
// shape become product values whose fields follow the declaration order;
// unknown fields are skipped. Union shapes accept a unit variant as a
// string, or an object with a single variant key whose value is the
// payload.
//
// Building is all or nothing: on failure no partial result is returned.
package build
