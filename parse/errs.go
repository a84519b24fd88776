package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse    = errors.New("parse error")
	ErrSyntax   = fmt.Errorf("%w: syntax", ErrParse)
	ErrEOF      = fmt.Errorf("%w: unexpected end of input", ErrParse)
	ErrDepth    = fmt.Errorf("%w: nesting too deep", ErrParse)
	ErrTrailing = fmt.Errorf("%w: trailing content", ErrParse)
	ErrEmpty    = fmt.Errorf("%w: empty document", ErrParse)
)

// Error reports where in the input parsing stopped. Err is one of the
// sentinels of this package or of package token; errors.Is(err, ErrParse)
// holds for every *Error.
type Error struct {
	// Offset is the byte offset of the failure.
	Offset int
	// Line and Col are 1-based.
	Line, Col int
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at offset %d (line %d, col %d)", e.Err, e.Offset, e.Line, e.Col)
}

func (e *Error) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
