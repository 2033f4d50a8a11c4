package dataset

import (
	"errors"
	"fmt"
)

// BuildErrorCode categorizes dataset construction errors.
type BuildErrorCode string

const (
	// ErrCodeInvalidN indicates a negative N.
	ErrCodeInvalidN BuildErrorCode = "INVALID_N"

	// ErrCodeDomainOverflow indicates N exceeds the space capacity.
	ErrCodeDomainOverflow BuildErrorCode = "DOMAIN_OVERFLOW"

	// ErrCodeOutOfDomain indicates an index or position outside its
	// domain, including malformed positions met during inversion.
	ErrCodeOutOfDomain BuildErrorCode = "OUT_OF_DOMAIN"

	// ErrCodeInvalidSpace indicates an ill-formed Space configuration.
	ErrCodeInvalidSpace BuildErrorCode = "INVALID_SPACE"
)

// BuildError reports a failure to construct or decompose a dataset.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidN returns true if the error reports a negative N.
// Uses errors.As to handle wrapped errors.
func IsInvalidN(err error) bool {
	return hasCode(err, ErrCodeInvalidN)
}

// IsDomainOverflow returns true if the error reports N beyond the
// space capacity.
func IsDomainOverflow(err error) bool {
	return hasCode(err, ErrCodeDomainOverflow)
}

// IsOutOfDomain returns true if the error reports a position outside
// its dimension domain.
func IsOutOfDomain(err error) bool {
	return hasCode(err, ErrCodeOutOfDomain)
}

func hasCode(err error, code BuildErrorCode) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func newBuildError(code BuildErrorCode, format string, args ...any) *BuildError {
	return &BuildError{Code: code, Message: fmt.Sprintf(format, args...)}
}
