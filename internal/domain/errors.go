package domain

import "errors"

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id")
)

// ValidationError signals that caller-supplied input violates a precondition.
// The operation was never attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// StructuralError signals malformed template data encountered mid-operation
// (e.g. non-contiguous week numbering).
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structural: " + e.Reason
}
