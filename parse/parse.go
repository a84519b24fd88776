package parse

import (
	"bytes"
	"fmt"

	"github.com/signadot/jtree/debug"
	"github.com/signadot/jtree/ir"
	"github.com/signadot/jtree/token"
)

var bom = []byte("\xef\xbb\xbf")

// Parse parses the JSON value in d.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.maxDepth < 1 || pOpts.maxDepth > ir.NestingLimit {
		pOpts.maxDepth = ir.NestingLimit
	}
	alloc := pOpts.alloc
	if alloc == nil {
		alloc = ir.CurrentAllocator()
	}
	p := &parser{d: d, f: ir.Using(alloc), maxDepth: pOpts.maxDepth}
	res, err := p.parse(pOpts.terminated)
	if pOpts.end != nil {
		*pOpts.end = p.i
	}
	if debug.Parse() {
		if err != nil {
			debug.Logf("parse %d bytes: %v\n", len(d), err)
		} else {
			debug.Logf("parse %d bytes, end %d: %v\n", len(d), p.i, res)
		}
	}
	return res, err
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

// ParseWithLength parses the first n bytes of d.
func ParseWithLength(d []byte, n int, opts ...ParseOption) (*ir.Node, error) {
	return Parse(d[:min(max(n, 0), len(d))], opts...)
}

type parser struct {
	d        []byte
	i        int
	f        ir.Factory
	maxDepth int
}

func (p *parser) parse(terminated bool) (*ir.Node, error) {
	if bytes.HasPrefix(p.d, bom) {
		p.i = len(bom)
	}
	p.skipSpace()
	if p.i == len(p.d) {
		return nil, p.errorAt(p.i, ErrEmpty)
	}
	res, err := p.value(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if terminated && p.i < len(p.d) {
		ir.Delete(res)
		return nil, p.errorAt(p.i, fmt.Errorf("%w: %q", ErrTrailing, p.d[p.i]))
	}
	return res, nil
}

func (p *parser) skipSpace() {
	p.i += token.SkipSpace(p.d[p.i:])
}

// errorAt records off as the place of failure and returns err there.
func (p *parser) errorAt(off int, err error) error {
	p.i = off
	line, col := token.NewPosDoc(p.d).LineCol(off)
	return &Error{Offset: off, Line: line + 1, Col: col + 1, Err: err}
}

func (p *parser) allocErr(what string) error {
	return fmt.Errorf("%w: %s at offset %d", ir.ErrAlloc, what, p.i)
}

func (p *parser) value(depth int) (*ir.Node, error) {
	if p.i >= len(p.d) {
		return nil, p.errorAt(p.i, ErrEOF)
	}
	var res *ir.Node
	switch c := p.d[p.i]; c {
	case 'n':
		if err := p.literal("null"); err != nil {
			return nil, err
		}
		res = p.f.Null()
	case 't':
		if err := p.literal("true"); err != nil {
			return nil, err
		}
		res = p.f.True()
	case 'f':
		if err := p.literal("false"); err != nil {
			return nil, err
		}
		res = p.f.False()
	case '"':
		s, n, err := token.ScanString(p.d[p.i:])
		if err != nil {
			return nil, p.errorAt(p.i+n, err)
		}
		p.i += n
		res = p.f.String(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, n, err := token.ScanNumber(p.d[p.i:])
		if err != nil {
			return nil, p.errorAt(p.i+n, err)
		}
		p.i += n
		res = p.f.Number(v)
	case '[':
		return p.array(depth + 1)
	case '{':
		return p.object(depth + 1)
	default:
		return nil, p.errorAt(p.i, fmt.Errorf("%w: unexpected %q", ErrSyntax, c))
	}
	if res == nil {
		return nil, p.allocErr("value")
	}
	return res, nil
}

func (p *parser) literal(lit string) error {
	rest := p.d[p.i:]
	if bytes.HasPrefix(rest, []byte(lit)) {
		p.i += len(lit)
		return nil
	}
	for i := range min(len(rest), len(lit)) {
		if rest[i] != lit[i] {
			return p.errorAt(p.i+i, fmt.Errorf("%w: expected %s", ErrSyntax, lit))
		}
	}
	return p.errorAt(len(p.d), ErrEOF)
}

func (p *parser) array(depth int) (*ir.Node, error) {
	if depth > p.maxDepth {
		return nil, p.errorAt(p.i, ErrDepth)
	}
	arr := p.f.Array()
	if arr == nil {
		return nil, p.allocErr("array")
	}
	p.i++
	p.skipSpace()
	if p.i < len(p.d) && p.d[p.i] == ']' {
		p.i++
		return arr, nil
	}
	for {
		v, err := p.value(depth)
		if err != nil {
			ir.Delete(arr)
			return nil, err
		}
		if err := arr.Append(v); err != nil {
			ir.Delete(v)
			ir.Delete(arr)
			return nil, err
		}
		p.skipSpace()
		if p.i == len(p.d) {
			ir.Delete(arr)
			return nil, p.errorAt(p.i, ErrEOF)
		}
		switch c := p.d[p.i]; c {
		case ',':
			p.i++
			p.skipSpace()
		case ']':
			p.i++
			return arr, nil
		default:
			ir.Delete(arr)
			return nil, p.errorAt(p.i, fmt.Errorf("%w: expected ',' or ']', got %q", ErrSyntax, c))
		}
	}
}

func (p *parser) object(depth int) (*ir.Node, error) {
	if depth > p.maxDepth {
		return nil, p.errorAt(p.i, ErrDepth)
	}
	obj := p.f.Object()
	if obj == nil {
		return nil, p.allocErr("object")
	}
	p.i++
	p.skipSpace()
	if p.i < len(p.d) && p.d[p.i] == '}' {
		p.i++
		return obj, nil
	}
	for {
		if err := p.member(obj, depth); err != nil {
			ir.Delete(obj)
			return nil, err
		}
		p.skipSpace()
		if p.i == len(p.d) {
			ir.Delete(obj)
			return nil, p.errorAt(p.i, ErrEOF)
		}
		switch c := p.d[p.i]; c {
		case ',':
			p.i++
			p.skipSpace()
		case '}':
			p.i++
			return obj, nil
		default:
			ir.Delete(obj)
			return nil, p.errorAt(p.i, fmt.Errorf("%w: expected ',' or '}', got %q", ErrSyntax, c))
		}
	}
}

// member parses `"key": value` and adds it to obj.
func (p *parser) member(obj *ir.Node, depth int) error {
	if p.i == len(p.d) {
		return p.errorAt(p.i, ErrEOF)
	}
	if c := p.d[p.i]; c != '"' {
		return p.errorAt(p.i, fmt.Errorf("%w: expected string key, got %q", ErrSyntax, c))
	}
	key, n, err := token.ScanString(p.d[p.i:])
	if err != nil {
		return p.errorAt(p.i+n, err)
	}
	p.i += n
	p.skipSpace()
	if p.i == len(p.d) {
		return p.errorAt(p.i, ErrEOF)
	}
	if c := p.d[p.i]; c != ':' {
		return p.errorAt(p.i, fmt.Errorf("%w: expected ':', got %q", ErrSyntax, c))
	}
	p.i++
	p.skipSpace()
	v, err := p.value(depth)
	if err != nil {
		return err
	}
	if err := obj.Add(key, v); err != nil {
		ir.Delete(v)
		return fmt.Errorf("key %q at offset %d: %w", key, p.i, err)
	}
	return nil
}
