package source

import (
	"fmt"
)

// APIError represents a non-success HTTP response from the page API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Page       int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s page %d: %s",
			e.StatusCode, e.Endpoint, e.Page, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s page %d",
		e.StatusCode, e.Endpoint, e.Page)
}
