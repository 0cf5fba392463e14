package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mst209/async-paginate/internal/testutil"
	"github.com/mst209/async-paginate/pkg/cache"
	"github.com/mst209/async-paginate/pkg/paginate"
	"github.com/mst209/async-paginate/pkg/source"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// newCachedClient wires a source client to the mock API with Redis caching.
func newCachedClient(t *testing.T, mock *testutil.MockAPI, redisClient *redis.Client, ttl time.Duration) *source.Client {
	t.Helper()

	client, err := source.New(source.Config{
		BaseURL:  mock.URL(),
		Cache:    cache.NewManager(redisClient),
		CacheTTL: ttl,
	})
	if err != nil {
		t.Fatalf("Failed to create source client: %v", err)
	}
	return client
}

// TestFetchAllPagesWithCache tests the complete flow: fetch every page in
// parallel, populate the cache, then serve a second run entirely from Redis.
func TestFetchAllPagesWithCache(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI(4)
	defer mock.Close()

	client := newCachedClient(t, mock, redisClient, 5*time.Minute)
	fetch := source.Pages[string](client, "/v1/orders/")

	ctx := context.Background()

	// Run 1: every page comes from the mock API
	items, err := paginate.All(ctx, 3, fetch)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	want := []string{"p1-a", "p1-b", "p2-a", "p2-b", "p3-a", "p3-b", "p4-a", "p4-b"}
	if len(items) != len(want) {
		t.Fatalf("First run items = %d, want %d", len(items), len(want))
	}
	for i, item := range items {
		if item != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, item, want[i])
		}
	}

	if mock.RequestCount() != 4 {
		t.Errorf("After run 1: API requests = %d, want 4", mock.RequestCount())
	}

	// Run 2: every page comes from the cache, including the total page
	// count discovered by the probe
	items2, err := paginate.All(ctx, 3, fetch)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(items2) != len(want) {
		t.Fatalf("Second run items = %d, want %d", len(items2), len(want))
	}
	for i, item := range items2 {
		if item != want[i] {
			t.Errorf("cached items[%d] = %q, want %q", i, item, want[i])
		}
	}

	if mock.RequestCount() != 4 {
		t.Errorf("After run 2: API requests = %d, want 4 (cache hits)", mock.RequestCount())
	}
}

// TestCacheExpiry tests that expired cache entries are refetched from the API.
func TestCacheExpiry(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI(3)
	defer mock.Close()

	client := newCachedClient(t, mock, redisClient, 1*time.Second)
	fetch := source.Pages[string](client, "/v1/orders/")

	ctx := context.Background()

	if _, err := paginate.All(ctx, 2, fetch); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if mock.RequestCount() != 3 {
		t.Errorf("After run 1: API requests = %d, want 3", mock.RequestCount())
	}

	// Wait for the entries to expire
	time.Sleep(1500 * time.Millisecond)

	if _, err := paginate.All(ctx, 2, fetch); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if mock.RequestCount() != 6 {
		t.Errorf("After run 2: API requests = %d, want 6 (entries expired)", mock.RequestCount())
	}
}

// TestFailedRunReusesCachedPages tests that pages fetched successfully during
// a failed run are still cached, so a retry only refetches the page that
// failed.
func TestFailedRunReusesCachedPages(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI(4)
	defer mock.Close()

	mock.SetPageStatus(3, 503)

	client := newCachedClient(t, mock, redisClient, 5*time.Minute)
	fetch := source.Pages[string](client, "/v1/orders/")

	ctx := context.Background()

	// Run 1 fails on page 3 and discards all results
	items, err := paginate.All(ctx, 4, fetch)
	if err == nil {
		t.Fatal("First run succeeded, want page 3 failure")
	}
	if items != nil {
		t.Errorf("Failed run returned %d items, want none", len(items))
	}

	var fetchErr *paginate.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Error type = %T, want *paginate.FetchError", err)
	}
	if fetchErr.Page != 3 {
		t.Errorf("Failed page = %d, want 3", fetchErr.Page)
	}

	if mock.RequestCount() != 4 {
		t.Errorf("After failed run: API requests = %d, want 4", mock.RequestCount())
	}

	// Run 2 succeeds and only refetches the page that failed
	mock.ClearPageStatus(3)

	items, err = paginate.All(ctx, 4, fetch)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if len(items) != 8 {
		t.Errorf("Second run items = %d, want 8", len(items))
	}

	if mock.RequestCount() != 5 {
		t.Errorf("After retry: API requests = %d, want 5 (only page 3 refetched)", mock.RequestCount())
	}
	if mock.PageRequestCount(3) != 2 {
		t.Errorf("Page 3 requests = %d, want 2", mock.PageRequestCount(3))
	}
}

// TestConcurrencyBoundOverHTTP tests that the configured fetch limit caps the
// number of concurrent requests observed by the API.
func TestConcurrencyBoundOverHTTP(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI(10)
	defer mock.Close()

	mock.SetPageDelay(func(page int) time.Duration {
		return 30 * time.Millisecond
	})

	client := newCachedClient(t, mock, redisClient, 5*time.Minute)
	fetch := source.Pages[string](client, "/v1/orders/")

	items, err := paginate.All(context.Background(), 3, fetch)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(items) != 20 {
		t.Errorf("Items = %d, want 20", len(items))
	}

	if peak := mock.PeakInFlight(); peak > 3 {
		t.Errorf("Peak concurrent requests = %d, want <= 3", peak)
	}
}
