package dimension

import (
	"errors"
	"fmt"
)

// DomainError reports a position or value outside a dimension's domain.
//
// Domain errors carry the dimension name and a description of the bad
// lookup. They are the only error kind this package produces.
type DomainError struct {
	// Dimension is "chi", "theta", "lambda", or "epsilon".
	Dimension string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("OUT_OF_DOMAIN: %s: %s", e.Dimension, e.Message)
}

// IsOutOfDomain returns true if the error is a dimension DomainError.
// Uses errors.As to handle wrapped errors.
func IsOutOfDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// newRangeError creates a DomainError for an index outside [0, size).
func newRangeError(dim string, index, size int) *DomainError {
	return &DomainError{
		Dimension: dim,
		Message:   fmt.Sprintf("index %d outside [0, %d)", index, size),
	}
}

// newValueError creates a DomainError for a reverse lookup miss.
func newValueError(dim string, value any) *DomainError {
	return &DomainError{
		Dimension: dim,
		Message:   fmt.Sprintf("no position for value %v", value),
	}
}
