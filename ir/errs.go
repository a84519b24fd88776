package ir

import (
	"errors"
	"fmt"
)

var (
	ErrAlloc     = errors.New("allocation failure")
	ErrOwnership = errors.New("ownership violation")
	ErrNotChild  = fmt.Errorf("%w: not a child of the given parent", ErrOwnership)
	ErrReference = fmt.Errorf("%w: cannot mutate through a reference", ErrOwnership)
	ErrType      = errors.New("wrong node type")
	ErrIndex     = errors.New("index out of range")
	ErrNotFound  = errors.New("key not found")
	ErrNilNode   = errors.New("nil node")
	ErrInvalid   = errors.New("invalid node")
	ErrDepth     = errors.New("nesting too deep")
)

// NestingLimit bounds how deep arrays and objects may nest in JSON text, when
// parsing and when printing. Trees built in memory are not bounded; they
// compare, hash and duplicate at any depth. Converting Go values with FromAny
// is bounded since those may be cyclic.
const NestingLimit = 1000

func typeErr(op string, want, got Type) error {
	return fmt.Errorf("%w: %s needs %s, got %s", ErrType, op, want, got)
}
