package modtable

import (
	"errors"
	"fmt"
)

// SelectionErrorCode categorizes table selection errors.
type SelectionErrorCode string

const (
	// ErrCodeUnknownTable indicates a table name absent from the catalog.
	ErrCodeUnknownTable SelectionErrorCode = "UNKNOWN_STRATEGY"

	// ErrCodeUnknownParameter indicates a parameter name or option
	// value a table's schema does not declare.
	ErrCodeUnknownParameter SelectionErrorCode = "UNKNOWN_PARAMETER"

	// ErrCodeNotReversible indicates an inversion request against a
	// table that does not declare an inverse.
	ErrCodeNotReversible SelectionErrorCode = "NOT_REVERSIBLE"
)

// SelectionError reports a bad table selection: unknown table, bad
// parameter, or an inversion against a one-way table.
type SelectionError struct {
	// Code identifies the error category.
	Code SelectionErrorCode

	// Table is the table name involved.
	Table string

	// Param is the offending parameter name (for parameter errors).
	Param string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *SelectionError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: table %q: %s", e.Code, e.Table, e.Message)
	}
	if e.Table != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownTable returns true if the error reports a table name
// missing from the catalog. Uses errors.As to handle wrapped errors.
func IsUnknownTable(err error) bool {
	return hasCode(err, ErrCodeUnknownTable)
}

// IsUnknownParameter returns true if the error reports an undeclared
// parameter name or option value.
func IsUnknownParameter(err error) bool {
	return hasCode(err, ErrCodeUnknownParameter)
}

// IsNotReversible returns true if the error reports an inversion
// against a one-way table.
func IsNotReversible(err error) bool {
	return hasCode(err, ErrCodeNotReversible)
}

func hasCode(err error, code SelectionErrorCode) bool {
	var se *SelectionError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
