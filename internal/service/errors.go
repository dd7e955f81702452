package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden is returned when an authenticated user is not allowed to
// perform the requested action. The record is left untouched.
var ErrForbidden = errors.New("forbidden")

// FieldViolation describes a single invalid input field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violation found in an input, not just the
// first one. Nothing is persisted when it is returned.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}

func (e *ValidationError) hasAny() bool {
	return len(e.Violations) > 0
}
