package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The advisor layer maps these to user-facing messages.
var (
	// ErrEmptyDataset: the book was constructed from, or the loader
	// produced, a dataset with no valid records. Fatal at startup.
	ErrEmptyDataset = errors.New("empty_dataset")

	// ErrEmptyInput: a min/max computation was requested over a
	// zero-length record set. Callers must pre-check existence.
	ErrEmptyInput = errors.New("empty_input")

	// ErrNoData: an average or prediction window contained no
	// qualifying prices.
	ErrNoData = errors.New("no_data")

	// ErrProductNotFound: the requested product has no orders at the
	// queried timestamp or window.
	ErrProductNotFound = errors.New("product_not_found")
)

// ValidationError represents a command input validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
