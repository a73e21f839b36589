package util

import "errors"

// Common application-level errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsError reports whether err matches target via errors.Is.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
