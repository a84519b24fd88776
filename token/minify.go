package token

// Minify removes whitespace and comments outside string literals from b in
// place and returns the shortened slice. Both // line comments and /* */
// block comments are removed. Bytes inside strings, escaped quotes
// included, are kept untouched. Minify does not validate b; an unterminated
// string or comment runs to the end of the input.
func Minify(b []byte) []byte {
	w, r := 0, 0
	for r < len(b) {
		switch c := b[r]; c {
		case ' ', '\t', '\n', '\r':
			r++
		case '/':
			switch {
			case r+1 < len(b) && b[r+1] == '/':
				r = skipLineComment(b, r+2)
			case r+1 < len(b) && b[r+1] == '*':
				r = skipBlockComment(b, r+2)
			default:
				b[w] = c
				w, r = w+1, r+1
			}
		case '"':
			end := stringEnd(b, r)
			w += copy(b[w:], b[r:end])
			r = end
		default:
			b[w] = c
			w, r = w+1, r+1
		}
	}
	return b[:w]
}

func skipLineComment(b []byte, r int) int {
	for r < len(b) && b[r] != '\n' {
		r++
	}
	return r
}

func skipBlockComment(b []byte, r int) int {
	for r+1 < len(b) {
		if b[r] == '*' && b[r+1] == '/' {
			return r + 2
		}
		r++
	}
	return len(b)
}

// stringEnd returns the offset just past the string literal starting at
// b[r], or len(b) if it is not terminated.
func stringEnd(b []byte, r int) int {
	for r++; r < len(b); r++ {
		switch b[r] {
		case '\\':
			r++
		case '"':
			return r + 1
		}
	}
	return len(b)
}
