package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingID       = errors.New("id is required")
	ErrMissingType     = errors.New("type is required")
	ErrMissingSource   = errors.New("source is required")
	ErrMissingTarget   = errors.New("target is required")
	ErrMissingRelation = errors.New("relation is required")
	ErrMissingStart    = errors.New("at least one start key is required")
)

// Sentinel errors for entity lookups.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

// ErrInvalidStep indicates a malformed traversal plan step.
var ErrInvalidStep = errors.New("invalid plan step")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// stepError wraps ErrInvalidStep with the offending step position.
func stepError(index int, op Op, format string, args ...any) error {
	return fmt.Errorf("step %d (%s): %s: %w", index, op, fmt.Sprintf(format, args...), ErrInvalidStep)
}
