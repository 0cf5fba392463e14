// Package cache provides Redis-backed caching for fetched pages.
//
// The cache manager stores raw page bodies together with the total page
// count the source reported, so a cached page 1 can still seed a full
// paginated run. Features:
//
// - Deterministic cache key generation per endpoint and page number
// - TTL management derived from each entry's expiry
// - Expired entries deleted on read
// - Prometheus metrics for observability
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(redisClient)
//
//	// Create cache key
//	key := cache.Key{
//		Endpoint: "/v1/orders/",
//		Page:     3,
//	}
//
//	// Get from cache
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// Cache miss - fetch from the source
//	}
//
//	// Store a fetched page for five minutes
//	entry = cache.NewEntry(data, totalPages, 5*time.Minute)
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - paginate_cache_hits_total - Cache hits
//   - paginate_cache_misses_total - Cache misses
//   - paginate_cache_errors_total{operation} - Cache operation errors
//   - paginate_cache_bytes_written_total - Bytes written to the cache
package cache
