package token

import "errors"

var (
	ErrUnterminated      = errors.New("unterminated")
	ErrNumberLeadingZero = errors.New("leading zero")
	ErrBadEscape         = errors.New("bad escape")
	ErrBadUnicode        = errors.New("bad unicode")
	ErrSurrogate         = errors.New("unpaired surrogate")
	ErrUnicodeControl    = errors.New("unicode control")
	ErrNumber            = errors.New("number")
)
