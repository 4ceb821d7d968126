package stream

import "github.com/signadot/go-rich/token"

// Error represents a stream error.
type Error struct {
	Msg string
	Pos token.Pos
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}
