package encode

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"
)

// EncodeMeta writes the marks of a metadata tree, one per line, in
// pre-order:
//
//	.            a1  doc.json:1:1   map
//	str          a2  doc.json:2:3   key
//	str          a3  doc.json:2:10  primitive
func EncodeMeta(m rich.Meta, w io.Writer, opts ...EncodeOption) error {
	return EncodeAnnotations(rich.Annotations(m), w, opts...)
}

// EncodeAnnotations writes annotations as EncodeMeta does. Columns are
// aligned on the uncolored text.
func EncodeAnnotations(as []rich.Annotation, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	type cell struct {
		attr ColorAttr
		text string
	}
	var (
		rows  [][4]cell
		types []ir.Type
		width [3]int
	)
	for i := range as {
		a := &as[i]
		if a.Key && !es.keys {
			continue
		}
		path := a.Path
		if path == "" {
			path = "."
		}
		kind := a.Kind.String()
		attr := KindColor
		if a.Key {
			kind = "key"
			attr = KeyColor
		} else if a.Variant != "" {
			kind += "/" + a.Variant
		}
		row := [4]cell{
			{FieldColor, path},
			{IDColor, a.Mark.ID.String()},
			{LocColor, a.Mark.Loc.String()},
			{attr, kind},
		}
		for j := range width {
			width[j] = max(width[j], runewidth.StringWidth(row[j].text))
		}
		rows = append(rows, row)
		types = append(types, kindType(a.Kind))
	}
	var sb strings.Builder
	for i, row := range rows {
		sb.Reset()
		for j, c := range row {
			sb.WriteString(colored(es, types[i], c.attr, c.text))
			if j < len(width) {
				sb.WriteString(strings.Repeat(" ", width[j]-runewidth.StringWidth(c.text)+2))
			}
		}
		sb.WriteByte('\n')
		if err := writeString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func colored(es *EncState, t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// kindType picks the value type whose colors are used for a kind.
func kindType(k ir.Kind) ir.Type {
	switch k {
	case ir.MapKind:
		return ir.ObjectType
	case ir.SequenceKind:
		return ir.ArrayType
	case ir.ProductKind:
		return ir.StructType
	case ir.SumKind:
		return ir.UnionType
	}
	return ir.StringType
}
