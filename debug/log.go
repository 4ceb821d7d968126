package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-rich/encode"
	"github.com/signadot/go-rich/ir"
	"github.com/signadot/go-rich/rich"
)

var logOut io.Writer = os.Stderr

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = buf.String()
		case rich.Meta:
			buf := bytes.NewBuffer(nil)
			if err := encode.EncodeMeta(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw rich.Meta] %v", x)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(logOut, msg, args...)
}
