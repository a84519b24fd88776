package token

// IsSpace reports whether c is JSON whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// SkipSpace returns the number of whitespace bytes at the start of d.
func SkipSpace(d []byte) int {
	i := 0
	for i < len(d) && IsSpace(d[i]) {
		i++
	}
	return i
}
