// Package encode prints ir trees as JSON text.
//
// # Usage
//
//	// formatted, objects one member per line, tab indented
//	s, err := encode.Print(node)
//
//	// no insignificant whitespace
//	s, err := encode.PrintUnformatted(node)
//
//	// stream to a writer with options
//	err := encode.Encode(node, os.Stdout, encode.Formatted(true), encode.EncodeColors(encode.NewColors()))
//
//	// print into a caller supplied buffer
//	n, err := encode.PrintPreallocated(node, buf, false)
//	if errors.Is(err, encode.ErrOverflow) {
//	    // buf was too small, its content is undefined
//	}
//
// # Output
//
// Strings are escaped the way the parser unescapes them, raw nodes are
// copied verbatim and numbers are printed in the shortest form that reads
// back to the same float64. Integral numbers below 1e15 in magnitude have no
// fraction or exponent. NaN and infinities have no JSON form and are printed
// as null.
//
// Reference containers are printed with the children of their target.
//
// # Related Packages
//
//   - github.com/signadot/jtree/ir - tree representation
//   - github.com/signadot/jtree/parse - parse text to a tree
package encode
