package engine

import (
	"errors"
	"fmt"
)

// BatchError reports the first failing selection of a batch run.
//
// Batches fail fast: the error names which selection failed and why,
// and the engine returns the datasets completed before the failure.
// A failed selection is never silently skipped.
type BatchError struct {
	// Index is the position of the failing selection in the batch.
	Index int

	// Table is the failing selection's table name.
	Table string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	return fmt.Sprintf("batch selection %d (%s): %v", e.Index, e.Table, e.Err)
}

// Unwrap returns the underlying failure.
func (e *BatchError) Unwrap() error {
	return e.Err
}

// AsBatchError extracts a BatchError from an error chain.
func AsBatchError(err error) (*BatchError, bool) {
	var be *BatchError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
