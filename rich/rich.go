package rich

import "fmt"

// Rich pairs a value with metadata. It never inspects either.
type Rich[V, M any] struct {
	Value V
	Meta  M
}

func New[V, M any](v V, m M) Rich[V, M] {
	return Rich[V, M]{Value: v, Meta: m}
}

func (r Rich[V, M]) Unpack() (V, M) {
	return r.Value, r.Meta
}

func MapValue[V, M, W any](r Rich[V, M], f func(V) W) Rich[W, M] {
	return Rich[W, M]{Value: f(r.Value), Meta: r.Meta}
}

func MapMeta[V, M, N any](r Rich[V, M], f func(M) N) Rich[V, N] {
	return Rich[V, N]{Value: r.Value, Meta: f(r.Meta)}
}

// Mark is the provenance of one node: its identifier and where it starts.
type Mark struct {
	ID  ID
	Loc Location
}

func (m Mark) IsZero() bool {
	return m == Mark{}
}

func (m Mark) String() string {
	return fmt.Sprintf("%s@%s", m.ID, m.Loc)
}

// Wrapped is a node's own mark together with the metadata of its children.
type Wrapped[N any] struct {
	Mark
	Nested N
}

func Wrap[N any](m Mark, n N) Wrapped[N] {
	return Wrapped[N]{Mark: m, Nested: n}
}

// Meta is the external metadata of a value node.
type Meta = Wrapped[Nested]

// SplitWith moves a node's mark outward and splits its value with split:
// the value ends up plain and the marks of the node and its children form a
// parallel metadata tree.
func SplitWith[S, V, N any](r Rich[S, Mark], split func(S) Rich[V, N]) Rich[V, Wrapped[N]] {
	inner := split(r.Value)
	return Rich[V, Wrapped[N]]{
		Value: inner.Value,
		Meta:  Wrapped[N]{Mark: r.Meta, Nested: inner.Meta},
	}
}

// MergeWith is the inverse of SplitWith. merge fails when v does not have
// the shape w describes.
func MergeWith[V, N, S any](v V, w Wrapped[N], merge func(V, N) (S, error)) (Rich[S, Mark], error) {
	s, err := merge(v, w.Nested)
	if err != nil {
		return Rich[S, Mark]{}, err
	}
	return Rich[S, Mark]{Value: s, Meta: w.Mark}, nil
}

// Leaf splits a primitive: the value is unchanged and carries unit
// metadata.
func Leaf[T any](v T) Rich[T, Unit] {
	return Rich[T, Unit]{Value: v}
}
