package parse

import "github.com/signadot/jtree/ir"

type parseOpts struct {
	alloc      ir.Allocator
	terminated bool
	end        *int
	maxDepth   int
}

type ParseOption func(*parseOpts)

// RequireTerminated makes any non-whitespace content after the value an
// error. By default it is allowed and reported through EndOffset.
func RequireTerminated(v bool) ParseOption {
	return func(o *parseOpts) { o.terminated = v }
}

// EndOffset stores into p the offset of the first byte not consumed: after
// the value and any whitespace following it on success, so that it points at
// trailing content if there is any, and the offset of the failure otherwise.
func EndOffset(p *int) ParseOption {
	return func(o *parseOpts) { o.end = p }
}

// WithAllocator builds the tree from a instead of the process-wide
// allocator.
func WithAllocator(a ir.Allocator) ParseOption {
	return func(o *parseOpts) { o.alloc = a }
}

// MaxDepth bounds how deep arrays and objects may nest. Values below 1 or
// above ir.NestingLimit select ir.NestingLimit.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
