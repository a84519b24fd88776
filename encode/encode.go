package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/jtree/ir"
	"github.com/signadot/jtree/token"
)

var (
	ErrEncoding = errors.New("encoding error")
	ErrOverflow = fmt.Errorf("%w: buffer overflow", ErrEncoding)
)

// flushAt is the size at which buffered output is handed to the writer.
const flushAt = 4096

type EncState struct {
	w         io.Writer
	buf       []byte
	formatted bool
	indent    string
	depth     int

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes the JSON text of node to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{w: w, indent: "\t"}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, es, 0); err != nil {
		return err
	}
	return es.flush()
}

func (es *EncState) flush() error {
	if len(es.buf) == 0 {
		return nil
	}
	_, err := es.w.Write(es.buf)
	es.buf = es.buf[:0]
	return err
}

func (es *EncState) write(s string) error {
	es.buf = append(es.buf, s...)
	if len(es.buf) >= flushAt {
		return es.flush()
	}
	return nil
}

func (es *EncState) writeColored(t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return es.write(s)
}

func (es *EncState) writeNL() error {
	if err := es.write("\n"); err != nil {
		return err
	}
	return es.write(strings.Repeat(es.indent, es.depth))
}

func encode(node *ir.Node, es *EncState, depth int) error {
	if depth > ir.NestingLimit {
		return fmt.Errorf("%w: %w at %s", ErrEncoding, ir.ErrDepth, node.Path())
	}
	switch t := node.Type(); t {
	case ir.NullType:
		return es.writeColored(t, ValueColor, "null")
	case ir.TrueType:
		return es.writeColored(t, ValueColor, "true")
	case ir.FalseType:
		return es.writeColored(t, ValueColor, "false")
	case ir.NumberType:
		return es.writeColored(t, ValueColor, FormatNumber(node.Number()))
	case ir.StringType:
		return es.writeColored(t, ValueColor, token.Quote(node.Text()))
	case ir.RawType:
		return es.writeColored(t, ValueColor, node.Text())
	case ir.ArrayType:
		return encodeArray(node, es, depth)
	case ir.ObjectType:
		return encodeObject(node, es, depth)
	default:
		return fmt.Errorf("%w: %w at %s", ErrEncoding, ir.ErrInvalid, node.Path())
	}
}

func encodeArray(node *ir.Node, es *EncState, depth int) error {
	sep := ","
	if es.formatted {
		sep = ", "
	}
	if err := es.writeColored(ir.ArrayType, SepColor, "["); err != nil {
		return err
	}
	for i, v := range node.Children() {
		if i > 0 {
			if err := es.writeColored(ir.ArrayType, SepColor, sep); err != nil {
				return err
			}
		}
		if err := encode(v, es, depth+1); err != nil {
			return err
		}
	}
	return es.writeColored(ir.ArrayType, SepColor, "]")
}

func encodeObject(node *ir.Node, es *EncState, depth int) error {
	fields := node.Children()
	if err := es.writeColored(ir.ObjectType, SepColor, "{"); err != nil {
		return err
	}
	if len(fields) == 0 {
		return es.writeColored(ir.ObjectType, SepColor, "}")
	}
	colon := ":"
	if es.formatted {
		colon = ":\t"
	}
	es.depth++
	for i, f := range fields {
		if i > 0 {
			if err := es.writeColored(ir.ObjectType, SepColor, ","); err != nil {
				return err
			}
		}
		if es.formatted {
			if err := es.writeNL(); err != nil {
				return err
			}
		}
		if err := es.writeColored(ir.ObjectType, FieldColor, token.Quote(f.Key())); err != nil {
			return err
		}
		if err := es.writeColored(ir.ObjectType, SepColor, colon); err != nil {
			return err
		}
		if err := encode(f, es, depth+1); err != nil {
			return err
		}
	}
	es.depth--
	if es.formatted {
		if err := es.writeNL(); err != nil {
			return err
		}
	}
	return es.writeColored(ir.ObjectType, SepColor, "}")
}

// FormatNumber returns the JSON text of v. Integral values below 1e15 in
// magnitude are printed without fraction or exponent, other values in the
// shortest form which parses back to v. NaN and infinities yield "null".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return "null"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
