package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		var g Format
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		if err := g.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if g != f {
			t.Errorf("round trip %s gave %s", f, g)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a/b.json", JSONFormat, false},
		{"c.yaml", YAMLFormat, false},
		{"c.yml", YAMLFormat, false},
		{"README", 0, true},
		{"x.txt", 0, true},
	}
	for _, tt := range tests {
		got, err := FromPath(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("FromPath(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FromPath(%q) = %s; want %s", tt.path, got, tt.want)
		}
	}
}
