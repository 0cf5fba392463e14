package cache

import (
	"fmt"
	"strings"
)

// Key identifies a cached page.
type Key struct {
	// Endpoint is the endpoint path (e.g. "/v1/orders/").
	Endpoint string

	// Page is the 1-based page number.
	Page int
}

// String generates a deterministic cache key string.
// Format: pages:endpoint:page=N
//
// Example:
//
//	pages:v1/orders:page=3
func (k Key) String() string {
	parts := []string{"pages"}

	// Normalize the endpoint path
	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	parts = append(parts, fmt.Sprintf("page=%d", k.Page))

	return strings.Join(parts, ":")
}
