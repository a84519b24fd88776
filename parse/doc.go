// Package parse parses JSON text into ir trees.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`{"name": "alice", "tags": [1, 2]}`))
//	if err != nil {
//	    return err
//	}
//	defer ir.Delete(node)
//
//	// strict: nothing but whitespace may follow the value
//	node, err := parse.ParseString(`[1, 2, 3]`, parse.RequireTerminated(true))
//
//	// lenient: find where the value ended
//	var end int
//	node, err := parse.Parse(data, parse.EndOffset(&end))
//
// Failures are reported as *Error carrying the byte offset. No partial tree
// is ever returned: whatever was built before the failure is deleted.
//
// # Related Packages
//
//   - github.com/signadot/jtree/ir - tree representation
//   - github.com/signadot/jtree/encode - print trees as text
//   - github.com/signadot/jtree/token - lexical primitives
package parse
