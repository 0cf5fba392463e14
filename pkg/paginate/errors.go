package paginate

import (
	"errors"
	"fmt"
)

// Common errors returned by the fetcher.
var (
	// ErrInvalidConcurrency is returned when the concurrency limit is below 1.
	ErrInvalidConcurrency = errors.New("max concurrency must be at least 1")

	// ErrNilPageFunc is returned when no page function is provided.
	ErrNilPageFunc = errors.New("page function is required")
)

// FetchError reports a failed fetch for a specific page.
type FetchError struct {
	Page int
	Err  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}
