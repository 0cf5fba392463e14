// Package main implements paginate-fetch, a CLI that retrieves every page of
// a paginated JSON endpoint in parallel and writes the combined array to
// stdout.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/mst209/async-paginate/pkg/cache"
	"github.com/mst209/async-paginate/pkg/logging"
	"github.com/mst209/async-paginate/pkg/paginate"
	"github.com/mst209/async-paginate/pkg/source"
	"github.com/redis/go-redis/v9"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: paginate-fetch <base-url> <endpoint>")
		fmt.Fprintln(os.Stderr, "Example: paginate-fetch https://api.example.com /v1/orders/")
		os.Exit(2)
	}
	baseURL := os.Args[1]
	endpoint := os.Args[2]

	// Configuration from environment
	concurrency := getEnvInt("CONCURRENCY", 10)
	timeout := getEnvDuration("TIMEOUT", 30*time.Second)
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	redisURL := getEnv("REDIS_URL", "")
	userAgent := getEnv("USER_AGENT", "paginate-fetch/0.1.0")

	// Library logs go to stderr so stdout stays valid JSON
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "warn")),
		Pretty: true,
		Output: os.Stderr,
	})

	cfg := source.DefaultConfig(baseURL)
	cfg.UserAgent = userAgent
	cfg.Timeout = timeout
	cfg.CacheTTL = cacheTTL

	ctx := context.Background()

	// Optional Redis-backed page cache
	if redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("Connected to Redis at %s", redisURL)
		cfg.Cache = cache.NewManager(redisClient)
	}

	client, err := source.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create source client: %v", err)
	}

	start := time.Now()
	out, err := run(ctx, client, endpoint, concurrency)
	if err != nil {
		log.Fatalf("Fetch failed: %v", err)
	}
	log.Printf("Fetched %s %s in %v", baseURL, endpoint, time.Since(start).Round(time.Millisecond))

	os.Stdout.Write(out)
	fmt.Println()
}

// run fetches every page of the endpoint and encodes the combined items.
func run(ctx context.Context, client *source.Client, endpoint string, concurrency int) ([]byte, error) {
	items, err := paginate.All(ctx, concurrency, source.Pages[json.RawMessage](client, endpoint))
	if err != nil {
		return nil, err
	}
	return json.Marshal(items)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Fatalf("Invalid %s: %q", key, value)
		}
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Fatalf("Invalid %s: %q", key, value)
		}
		return d
	}
	return defaultValue
}
