package rich

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestIDStringSortsNumerically(t *testing.T) {
	ids := []ID{1, 2, 9, 10, 15, 16, 17, 255, 256, 4095, 4096, 1 << 32, math.MaxUint64 - 1, math.MaxUint64}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	if !sort.StringsAreSorted(strs) {
		t.Errorf("id strings not sorted: %v", strs)
	}
	for i, s := range strs {
		got, err := ParseID(s)
		if err != nil {
			t.Fatalf("ParseID(%q): %v", s, err)
		}
		if got != ids[i] {
			t.Errorf("ParseID(%q) = %d; want %d", s, got, ids[i])
		}
	}
}

func TestIDStringExamples(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{0, "a0"},
		{1, "a1"},
		{16, "b10"},
		{255, "bff"},
		{4096, "d1000"},
		{math.MaxUint64, "pffffffffffffffff"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("ID(%d).String() = %q; want %q", uint64(tt.id), got, tt.want)
		}
	}
}

func TestParseIDErrors(t *testing.T) {
	for _, s := range []string{"", "a", "b1", "a12", "zz", "ag"} {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) should fail", s)
		}
	}
}

func TestScopeMonotonic(t *testing.T) {
	s := NewScope()
	prev := NoID
	seen := map[ID]bool{}
	for i := 0; i < 1000; i++ {
		id, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		if id != prev+1 {
			t.Fatalf("gap between %d and %d", prev, id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
		prev = id
	}
	if s.Issued() != 1000 {
		t.Errorf("issued %d", s.Issued())
	}
}

func TestScopeBase(t *testing.T) {
	s := NewScope(WithBase(100))
	if id, _ := s.Next(); id != 100 {
		t.Errorf("first id %d; want 100", id)
	}
	s = NewScope(WithBase(NoID))
	if id, _ := s.Next(); id != 1 {
		t.Errorf("first id %d; want 1", id)
	}
}

func TestScopeExhausted(t *testing.T) {
	s := NewScope(WithBase(MaxID - 1))
	for _, want := range []ID{MaxID - 1, MaxID} {
		id, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error before exhaustion: %v", err)
		}
		if id != want {
			t.Fatalf("got %d; want %d", id, want)
		}
	}
	for i := 0; i < 2; i++ {
		id, err := s.Next()
		if !errors.Is(err, ErrIDExhausted) {
			t.Fatalf("expected ErrIDExhausted, got %v", err)
		}
		if id != NoID {
			t.Errorf("exhausted scope returned %d", id)
		}
	}
	if _, ok := s.Peek(); ok {
		t.Errorf("Peek on exhausted scope reported ok")
	}
	if s.Issued() != 2 {
		t.Errorf("issued %d", s.Issued())
	}
}
