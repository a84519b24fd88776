package encode

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signadot/jtree/ir"
)

// Print returns the formatted text of n.
func Print(n *ir.Node) (string, error) {
	buf := &strings.Builder{}
	if err := Encode(n, buf, Formatted(true)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintUnformatted returns the text of n without insignificant whitespace.
func PrintUnformatted(n *ir.Node) (string, error) {
	buf := &strings.Builder{}
	if err := Encode(n, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintBuffered prints n into a buffer that starts with prebuffer bytes of
// capacity and grows as needed.
func PrintBuffered(n *ir.Node, prebuffer int, formatted bool) ([]byte, error) {
	if prebuffer < 0 {
		return nil, fmt.Errorf("%w: negative prebuffer %d", ErrEncoding, prebuffer)
	}
	buf := &bytes.Buffer{}
	buf.Grow(prebuffer)
	if err := Encode(n, buf, Formatted(formatted)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PrintPreallocated prints n into buf and returns the number of bytes
// written. If buf is too small it returns ErrOverflow and the content of buf
// is undefined.
func PrintPreallocated(n *ir.Node, buf []byte, formatted bool) (int, error) {
	fw := &fixedWriter{buf: buf}
	if err := Encode(n, fw, Formatted(formatted)); err != nil {
		return 0, err
	}
	return fw.n, nil
}

type fixedWriter struct {
	buf []byte
	n   int
}

func (w *fixedWriter) Write(p []byte) (int, error) {
	c := copy(w.buf[w.n:], p)
	w.n += c
	if c < len(p) {
		return c, fmt.Errorf("%w: need more than %d bytes", ErrOverflow, len(w.buf))
	}
	return c, nil
}
