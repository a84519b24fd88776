package parse

import (
	"testing"

	"github.com/signadot/jtree/encode"
	"github.com/signadot/jtree/ir"
)

func finite(n *ir.Node) bool {
	ok := true
	n.Visit(func(c *ir.Node, isPost bool) (bool, error) {
		if c.IsNumber() && encode.FormatNumber(c.Number()) == "null" {
			ok = false
		}
		return ok, nil
	})
	return ok
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		// primitives
		`null`,
		`true`,
		`false`,
		`42`,
		`3.14`,
		`-1e10`,
		`1e999`,
		`""`,
		`"hello"`,
		`hello`,

		// arrays
		`[]`,
		`[1, 2, 3]`,
		`[[nested], [arrays]]`,
		`[1,]`,

		// objects
		`{}`,
		`{"foo": "bar"}`,
		`{"a": 1, "b": 2}`,
		`{"nested": {"object": "value"}}`,
		`{"dup": 1, "dup": 2}`,

		// mixed
		`{"users": [{"name": "alice"}, {"name": "bob"}]}`,

		// strings with special chars
		`"with\nnewline"`,
		`"with\ttab"`,
		`"with \"quotes\""`,
		`"😀"`,
		`"\ud83d"`,
		"\"\xff\xfe\"",

		// edge cases
		"\xef\xbb\xbf{}",
		`[1] trailing`,
		`01`,
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tr := ir.NewTracker(nil)
		node, err := Parse(data, WithAllocator(tr))
		if err != nil {
			if node != nil {
				t.Fatalf("tree returned with error %v", err)
			}
			checkLive(t, tr, "failed parse")
			return
		}

		for _, formatted := range []bool{false, true} {
			out, err := encode.PrintBuffered(node, 0, formatted)
			if err != nil {
				t.Fatalf("print: %v", err)
			}
			back, err := Parse(out, WithAllocator(tr), RequireTerminated(true))
			if err != nil {
				t.Fatalf("reparse of %q: %v", out, err)
			}
			if finite(node) && !ir.Equal(node, back, true) {
				t.Fatalf("%q printed as %q which parses differently", data, out)
			}
			ir.Delete(back)
		}
		ir.Delete(node)
		checkLive(t, tr, "deleted trees")
	})
}
