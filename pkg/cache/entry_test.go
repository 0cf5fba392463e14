package cache

import (
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	data := []byte(`[{"id": 1}, {"id": 2}]`)
	entry := NewEntry(data, 7, 5*time.Minute)

	if string(entry.Data) != string(data) {
		t.Errorf("Data = %s, want %s", entry.Data, data)
	}
	if entry.TotalPages != 7 {
		t.Errorf("TotalPages = %d, want 7", entry.TotalPages)
	}
	if entry.CachedAt.IsZero() {
		t.Error("CachedAt should be set")
	}

	wantExpiry := entry.CachedAt.Add(5 * time.Minute)
	if !entry.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("ExpiresAt = %v, want %v", entry.ExpiresAt, wantExpiry)
	}
}

func TestEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "expired entry",
			expiresAt: time.Now().Add(-1 * time.Hour),
			want:      true,
		},
		{
			name:      "valid entry",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{
				ExpiresAt: tt.expiresAt,
			}
			if got := entry.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_TTL(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		wantMin   time.Duration
		wantMax   time.Duration
	}{
		{
			name:      "one hour remaining",
			expiresAt: time.Now().Add(1 * time.Hour),
			wantMin:   59 * time.Minute,
			wantMax:   61 * time.Minute,
		},
		{
			name:      "already expired",
			expiresAt: time.Now().Add(-1 * time.Hour),
			wantMin:   0,
			wantMax:   0,
		},
		{
			name:      "5 minutes remaining",
			expiresAt: time.Now().Add(5 * time.Minute),
			wantMin:   4*time.Minute + 59*time.Second,
			wantMax:   5*time.Minute + 1*time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{
				ExpiresAt: tt.expiresAt,
			}
			got := entry.TTL()
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TTL() = %v, want between %v and %v", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}
