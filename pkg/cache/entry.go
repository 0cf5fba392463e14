package cache

import (
	"time"
)

// Entry represents a cached page.
type Entry struct {
	// Data is the raw page body.
	Data []byte `json:"data"`

	// TotalPages is the total page count the source reported with this page.
	TotalPages int `json:"total_pages"`

	// CachedAt is when the page was stored.
	CachedAt time.Time `json:"cached_at"`

	// ExpiresAt is when the entry becomes stale.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry for a fetched page with the given lifetime.
func NewEntry(data []byte, totalPages int, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Data:       data,
		TotalPages: totalPages,
		CachedAt:   now,
		ExpiresAt:  now.Add(ttl),
	}
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
