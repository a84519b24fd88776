package token

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// AppendQuote appends s as a JSON string literal to dst.
//
// Quotes, backslashes and control characters are escaped. All other bytes,
// including bytes at or above 0x80 whether or not they form valid UTF-8, are
// copied as they are.
func AppendQuote(dst []byte, s string) []byte {
	const hex = "0123456789abcdef"
	dst = append(dst, '"')
	st := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf || safeSet[c] {
			continue
		}
		dst = append(dst, s[st:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
		}
		st = i + 1
	}
	dst = append(dst, s[st:]...)
	return append(dst, '"')
}

func Quote(s string) string {
	return string(AppendQuote(make([]byte, 0, len(s)+2), s))
}

// Unquote decodes a complete JSON string literal.
func Unquote(v string) (string, error) {
	s, n, err := ScanString([]byte(v))
	if err != nil {
		return "", err
	}
	if n != len(v) {
		return "", fmt.Errorf("%w: trailing %q", ErrUnterminated, v[n:])
	}
	return s, nil
}

// ScanString decodes the string literal at the start of d, which must begin
// with a double quote. It returns the decoded text and the number of bytes
// consumed, closing quote included. On error the returned count is the
// offset of the offending byte.
//
// Escaped UTF-16 surrogate pairs are combined; a surrogate without its
// partner is an error. Raw control characters are rejected. Other bytes are
// kept verbatim.
func ScanString(d []byte) (string, int, error) {
	if len(d) == 0 || d[0] != '"' {
		return "", 0, fmt.Errorf("%w: expected '\"'", ErrUnterminated)
	}
	// fast path: no escapes
	i := 1
	for i < len(d) && d[i] != '"' && d[i] != '\\' && d[i] >= 0x20 {
		i++
	}
	if i < len(d) && d[i] == '"' {
		return string(d[1:i]), i + 1, nil
	}
	b := &strings.Builder{}
	b.Write(d[1:i])
	for i < len(d) {
		c := d[i]
		switch {
		case c == '"':
			return b.String(), i + 1, nil
		case c < 0x20:
			return "", i, fmt.Errorf("%w: %#02x in string", ErrUnicodeControl, c)
		case c != '\\':
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i == len(d) {
			break
		}
		switch d[i] {
		case '"', '\\', '/':
			b.WriteByte(d[i])
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r, n, err := unicodeEscape(d[i-1:])
			if err != nil {
				return "", i - 1 + n, err
			}
			b.WriteRune(r)
			i += n - 2
		default:
			return "", i, fmt.Errorf("%w: \\%c", ErrBadEscape, d[i])
		}
		i++
	}
	return "", len(d), ErrUnterminated
}

// unicodeEscape decodes \uXXXX at the start of d, together with a following
// \uXXXX when the first is a high surrogate. It returns the rune and the
// number of bytes consumed, or on error the offset of the problem.
func unicodeEscape(d []byte) (rune, int, error) {
	r1, ok := hex4(d[2:])
	if !ok {
		return 0, 2, ErrBadUnicode
	}
	if !utf16.IsSurrogate(r1) {
		return r1, 6, nil
	}
	if r1 >= 0xdc00 || len(d) < 12 || d[6] != '\\' || d[7] != 'u' {
		return 0, 0, fmt.Errorf("%w: \\u%04x", ErrSurrogate, r1)
	}
	r2, ok := hex4(d[8:])
	if !ok {
		return 0, 8, ErrBadUnicode
	}
	r := utf16.DecodeRune(r1, r2)
	if r == utf8.RuneError {
		return 0, 6, fmt.Errorf("%w: \\u%04x\\u%04x", ErrSurrogate, r1, r2)
	}
	return r, 12, nil
}

func hex4(d []byte) (rune, bool) {
	if len(d) < 4 {
		return 0, false
	}
	var r rune
	for _, c := range d[:4] {
		switch {
		case c >= '0' && c <= '9':
			c -= '0'
		case c >= 'a' && c <= 'f':
			c -= 'a' - 10
		case c >= 'A' && c <= 'F':
			c -= 'A' - 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}

// safeSet holds the ASCII bytes that need no escaping inside a string.
var safeSet = [utf8.RuneSelf]bool{
	' ': true, '!': true, '#': true, '$': true, '%': true, '&': true,
	'\'': true, '(': true, ')': true, '*': true, '+': true, ',': true,
	'-': true, '.': true, '/': true, '0': true, '1': true, '2': true,
	'3': true, '4': true, '5': true, '6': true, '7': true, '8': true,
	'9': true, ':': true, ';': true, '<': true, '=': true, '>': true,
	'?': true, '@': true, 'A': true, 'B': true, 'C': true, 'D': true,
	'E': true, 'F': true, 'G': true, 'H': true, 'I': true, 'J': true,
	'K': true, 'L': true, 'M': true, 'N': true, 'O': true, 'P': true,
	'Q': true, 'R': true, 'S': true, 'T': true, 'U': true, 'V': true,
	'W': true, 'X': true, 'Y': true, 'Z': true, '[': true, ']': true,
	'^': true, '_': true, '`': true, 'a': true, 'b': true, 'c': true,
	'd': true, 'e': true, 'f': true, 'g': true, 'h': true, 'i': true,
	'j': true, 'k': true, 'l': true, 'm': true, 'n': true, 'o': true,
	'p': true, 'q': true, 'r': true, 's': true, 't': true, 'u': true,
	'v': true, 'w': true, 'x': true, 'y': true, 'z': true, '{': true,
	'|': true, '}': true, '~': true, '\u007f': true,
}
