// Package testutil provides testing utilities for the async-paginate library.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockAPI is a configurable mock paginated HTTP API for testing.
// Every path serves the same collection: a JSON array body per page, with
// the total page count reported in the X-Pages header. The page number is
// read from the "page" query parameter (default 1).
type MockAPI struct {
	server *httptest.Server

	mu              sync.Mutex
	totalPages      int
	pageBody        func(page int) string
	pageDelay       func(page int) time.Duration
	pageStatus      map[int]int
	omitPagesHeader bool

	// Tracking
	requestCount int
	pageRequests map[int]int
	inFlight     int
	peakInFlight int
}

// NewMockAPI creates a mock API serving the given number of pages.
// The default body for page N is ["pN-a","pN-b"].
func NewMockAPI(totalPages int) *MockAPI {
	mock := &MockAPI{
		totalPages:   totalPages,
		pageStatus:   make(map[int]int),
		pageRequests: make(map[int]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))

	return mock
}

// handle serves one page request and tracks request concurrency.
func (m *MockAPI) handle(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	m.mu.Lock()
	m.requestCount++
	m.pageRequests[page]++
	m.inFlight++
	if m.inFlight > m.peakInFlight {
		m.peakInFlight = m.inFlight
	}
	totalPages := m.totalPages
	status := m.pageStatus[page]
	omitHeader := m.omitPagesHeader
	var delay time.Duration
	if m.pageDelay != nil {
		delay = m.pageDelay(page)
	}
	body := fmt.Sprintf(`["p%d-a","p%d-b"]`, page, page)
	if m.pageBody != nil {
		body = m.pageBody(page)
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if delay > 0 {
		time.Sleep(delay)
	}

	if status != 0 {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": "page %d failed"}`, page)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if !omitHeader {
		w.Header().Set("X-Pages", strconv.Itoa(totalPages))
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.pageRequests = make(map[int]int)
	m.peakInFlight = 0
}

// SetPageBody sets the body generator for page responses.
func (m *MockAPI) SetPageBody(fn func(page int) string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageBody = fn
}

// SetPageDelay sets an artificial delay generator for page responses.
func (m *MockAPI) SetPageDelay(fn func(page int) time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageDelay = fn
}

// SetPageStatus makes a specific page respond with the given HTTP status.
func (m *MockAPI) SetPageStatus(page, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageStatus[page] = status
}

// ClearPageStatus restores normal responses for a page.
func (m *MockAPI) ClearPageStatus(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pageStatus, page)
}

// OmitPagesHeader makes responses omit the X-Pages header.
func (m *MockAPI) OmitPagesHeader() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.omitPagesHeader = true
}

// RequestCount returns the total number of requests served.
func (m *MockAPI) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

// PageRequestCount returns the number of requests served for one page.
func (m *MockAPI) PageRequestCount(page int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pageRequests[page]
}

// PeakInFlight returns the maximum number of requests that were being
// served at the same time.
func (m *MockAPI) PeakInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peakInFlight
}
