package rich

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// ID identifies one node (or map key) of a parsed document. IDs are unique
// within the Scope that issued them and increase in document order.
type ID uint64

const (
	// NoID is never issued by a Scope. A zero Mark carries it.
	NoID  ID = 0
	MaxID ID = math.MaxUint64
)

// String encodes id as length-prefixed hex so that lexicographic order of
// the strings equals numeric order of the ids. The prefix letter counts hex
// digits: 'a'=1 ... 'p'=16.
//
//	1    → "a1"
//	16   → "b10"
//	4096 → "d1000"
func (id ID) String() string {
	length := hexDigits(uint64(id))
	prefix := byte('a' + length - 1)
	return string(prefix) + strconv.FormatUint(uint64(id), 16)
}

func hexDigits(n uint64) int {
	if n == 0 {
		return 1
	}
	return (bits.Len64(n) + 3) / 4
}

func ParseID(s string) (ID, error) {
	if len(s) < 2 {
		return NoID, fmt.Errorf("invalid id %q", s)
	}
	n := int(s[0]-'a') + 1
	if n < 1 || n > 16 || len(s)-1 != n {
		return NoID, fmt.Errorf("invalid id %q: bad length prefix", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 64)
	if err != nil {
		return NoID, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ID(v), nil
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(d []byte) error {
	v, err := ParseID(string(d))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
