package encode

import "github.com/signadot/jtree/ir"

// MustString returns the unformatted text of node and panics if it cannot be
// printed.
func MustString(node *ir.Node) string {
	s, err := PrintUnformatted(node)
	if err != nil {
		panic(err)
	}
	return s
}
