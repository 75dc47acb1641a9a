package lvm

import (
	"github.com/pkg/errors"
	"math"
	"strconv"
	"strings"
)

// ParseBytes parses a byte column such as "120028397568B".
// The last character is the unit letter emitted by `--units b` and is dropped.
func ParseBytes(tok string) (uint64, error) {
	tok = strings.TrimSpace(tok)
	if len(tok) < 2 {
		return 0, errors.Wrapf(ErrMalformedNumber, "byte value %q", tok)
	}
	digits := tok[:len(tok)-1]
	if !allDigits(digits) {
		return 0, errors.Wrapf(ErrMalformedNumber, "byte value %q", tok)
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "byte value %q overflows", tok)
	}
	return v, nil
}

// ParseCount parses a small unsigned column such as pv_count or stripes.
func ParseCount(tok string) (uint16, error) {
	tok = strings.TrimSpace(tok)
	if !allDigits(tok) {
		return 0, errors.Wrapf(ErrMalformedNumber, "count %q", tok)
	}
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "count %q out of range", tok)
	}
	return uint16(v), nil
}

// ParseSize parses the positive integer typed into a size field.
func ParseSize(tok string) (uint64, error) {
	tok = strings.TrimSpace(tok)
	if !allDigits(tok) {
		return 0, errors.Wrapf(ErrMalformedNumber, "size %q", tok)
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "size %q overflows", tok)
	}
	if v == 0 {
		return 0, errors.Wrapf(ErrInvalidRequest, "size must be positive")
	}
	return v, nil
}

// mulBytes returns n*unit, failing instead of wrapping around.
func mulBytes(n, unit uint64) (uint64, error) {
	if unit != 0 && n > math.MaxUint64/unit {
		return 0, errors.Wrapf(ErrMalformedNumber, "size %d*%d overflows", n, unit)
	}
	return n * unit, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
