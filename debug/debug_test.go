package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"
	"github.com/signadot/go-rich/token"
)

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"yes", false},
	}
	for _, tt := range tests {
		t.Setenv("RICH_DEBUG_TEST", tt.val)
		if got := boolEnv("RICH_DEBUG_TEST"); got != tt.want {
			t.Errorf("boolEnv(%q) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	logOut = buf
	t.Cleanup(func() { logOut = os.Stderr })

	node := ir.FromMap(map[string]*ir.Node{"a": ir.FromInt(1)})
	m := rich.Wrap[rich.Nested](rich.Mark{ID: 7, Loc: rich.Location{Pos: token.Pos{Line: 2, Col: 3}}}, rich.Unit{})
	Logf("node %v meta %v n=%d\n", node, m, 3)

	out := buf.String()
	for _, want := range []string{`"a"`, "a7", "n=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "&{") {
		t.Errorf("node rendered raw: %q", out)
	}
}
