package rich

import "github.com/signadot/go-rich/token"

// Location is where a node starts in its source document.
type Location struct {
	Source string
	token.Pos
}

func (l Location) String() string {
	if l.Source == "" {
		return l.Pos.String()
	}
	return l.Source + ":" + l.Pos.String()
}
