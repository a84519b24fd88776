package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"
)

var out io.Writer = os.Stderr

// Logf writes a formatted message to stderr. *ir.Node arguments are
// rendered as compact JSON, tracker statistics and plain Go maps and slices
// through encoding/json.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, ir.TrackerStats:
			d, err := json.Marshal(a)
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			s, err := encode.PrintUnformatted(x)
			if err != nil {
				args[i] = fmt.Sprintf("[%s node: %v]", x.Type(), err)
				continue
			}
			args[i] = s
		}
	}
	fmt.Fprintf(out, msg, args...)
}
