package token

import (
	"errors"
	"fmt"
	"strconv"
)

// ScanNumber decodes the number literal at the start of d: an optional minus
// sign, an integer part without leading zeros, an optional fraction and an
// optional exponent. It returns the value and the number of bytes consumed,
// or on error the offset of the offending byte.
//
// Literals too large for a float64 yield ±Inf, too small ones 0.
func ScanNumber(d []byte) (float64, int, error) {
	i := 0
	if i < len(d) && d[i] == '-' {
		i++
	}
	digits := asciiDigits(d[i:])
	if digits == 0 {
		return 0, i, fmt.Errorf("%w: expected digit", ErrNumber)
	}
	if digits > 1 && d[i] == '0' {
		return 0, i + 1, ErrNumberLeadingZero
	}
	i += digits
	f, err := fract(d[i:])
	if err != nil {
		return 0, i + f, err
	}
	i += f
	e, err := exp(d[i:])
	if err != nil {
		return 0, i + e, err
	}
	i += e
	v, err := strconv.ParseFloat(string(d[:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, 0, fmt.Errorf("%w: %w", ErrNumber, err)
	}
	return v, i, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func exp(d []byte) (int, error) {
	if len(d) == 0 {
		return 0, nil
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0, nil
	}
	i := 1
	if i < len(d) {
		switch d[i] {
		case '+', '-':
			i++
		}
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return i, fmt.Errorf("%w: exponent needs digits", ErrNumber)
	}
	return n + i, nil
}

func fract(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '.' {
		return 0, nil
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		// . must be followed by 1 or more digits rfc 7159
		return 1, fmt.Errorf("%w: fraction needs digits", ErrNumber)
	}
	return n + 1, nil
}
