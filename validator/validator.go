// Package validator provides input validation for the application
package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when a numeric field cannot be parsed
var ErrInvalidInput = errors.New("invalid input")

// ParseID parses a book ID
func ParseID(s string) (int64, error) {
	return parseInt("id", s)
}

// ParseQty parses a quantity. Any integer is accepted, including negatives.
func ParseQty(s string) (int64, error) {
	return parseInt("qty", s)
}

// ParseOptionalQty parses a quantity that may be left blank.
// A blank value returns nil.
func ParseOptionalQty(s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	qty, err := ParseQty(s)
	if err != nil {
		return nil, err
	}
	return &qty, nil
}

func parseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, field, s)
	}
	return v, nil
}
