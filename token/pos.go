package token

import (
	"fmt"
	"sort"
)

// Pos is a position in a source document. Line and Col are 1-indexed, Offset
// is a 0-indexed byte offset. The zero Pos is invalid and means "unknown".
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p occurs strictly before q in the same document.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// PosDoc indexes the line starts of a document so positions can be
// converted between offsets and line/column pairs.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{d: d}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

// LineCol returns the 1-indexed line and column of offset off.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 1, off + 1
	}
	return di + 1, off - p.n[di-1]
}

// Offset returns the byte offset of a 1-indexed line and column, or -1 if
// the line is out of range.
func (p *PosDoc) Offset(line, col int) int {
	if line < 1 || line > len(p.n)+1 {
		return -1
	}
	start := 0
	if line > 1 {
		start = p.n[line-2] + 1
	}
	return start + col - 1
}

// Pos returns the full position of offset off.
func (p *PosDoc) Pos(off int) Pos {
	l, c := p.LineCol(off)
	return Pos{Offset: off, Line: l, Col: c}
}

// At returns the full position of a 1-indexed line and column.
func (p *PosDoc) At(line, col int) Pos {
	return Pos{Offset: p.Offset(line, col), Line: line, Col: col}
}

// Context returns up to n bytes of the line containing off, for error
// messages.
func (p *PosDoc) Context(off, n int) string {
	if off < 0 || off > len(p.d) {
		return ""
	}
	l, _ := p.LineCol(off)
	start := p.Offset(l, 1)
	end := len(p.d)
	if l <= len(p.n) {
		end = p.n[l-1]
	}
	if end-start > n {
		if off-start > n/2 {
			start = off - n/2
		}
		end = min(end, start+n)
	}
	return string(p.d[start:end])
}
