package paginate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds fetcher configuration.
type Config struct {
	// MaxConcurrency is the maximum number of page fetches in flight at once.
	// Must be at least 1.
	MaxConcurrency int

	// Timeout bounds each single page fetch (0 = no per-page deadline).
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 10,
	}
}

// Page is the result of fetching a single page.
type Page[T any] struct {
	// TotalPages is the total page count of the data set. Only the value
	// reported by page 1 is used; later pages may leave it zero.
	TotalPages int

	// Items are the page's data items in source order.
	Items []T
}

// PageFunc fetches a single page by its 1-based page number.
type PageFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// Fetcher fetches all pages of a paginated data set with bounded concurrency.
// A Fetcher is immutable after construction and safe for concurrent use.
type Fetcher[T any] struct {
	fetch  PageFunc[T]
	config Config
	logger zerolog.Logger
}

// New creates a fetcher for the given page function.
func New[T any](fetch PageFunc[T], cfg Config) (*Fetcher[T], error) {
	if fetch == nil {
		return nil, ErrNilPageFunc
	}
	if cfg.MaxConcurrency < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidConcurrency, cfg.MaxConcurrency)
	}

	return &Fetcher[T]{
		fetch:  fetch,
		config: cfg,
		logger: log.With().Str("component", "paginate").Logger(),
	}, nil
}

// All fetches every page of a paginated data set and returns the items of
// all pages concatenated in ascending page order. It is shorthand for New
// followed by Run with the given concurrency limit.
func All[T any](ctx context.Context, concurrency int, fetch PageFunc[T]) ([]T, error) {
	f, err := New(fetch, Config{MaxConcurrency: concurrency})
	if err != nil {
		return nil, err
	}
	return f.Run(ctx)
}

// Run fetches every page and returns all items concatenated in ascending
// page order. Any page failure fails the whole run: no partial results are
// returned, and every fetch that was started runs to completion first.
func (f *Fetcher[T]) Run(ctx context.Context) ([]T, error) {
	start := time.Now()

	// Fetch page 1 alone to learn the total page count. It never competes
	// for a concurrency slot since the pool size is unknown until it returns.
	first, err := f.fetchPage(ctx, 1)
	if err != nil {
		runsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	totalPages := first.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	f.logger.Info().
		Int("total_pages", totalPages).
		Int("max_concurrency", f.config.MaxConcurrency).
		Msg("Starting parallel page fetch")

	// Single page optimization
	if totalPages == 1 {
		runsTotal.WithLabelValues("completed").Inc()
		f.logger.Info().
			Int("pages", 1).
			Int("items", len(first.Items)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (single page)")
		return first.Items, nil
	}

	// One slot per page, indexed by page number (slot 0 unused). Each page
	// writes only its own slot, so no lock is needed around collection.
	pages := make([][]T, totalPages+1)
	errs := make([]error, totalPages+1)
	pages[1] = first.Items

	sem := make(chan struct{}, f.config.MaxConcurrency)
	var wg sync.WaitGroup

	for page := 2; page <= totalPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := f.fetchPage(ctx, page)
			if err != nil {
				errs[page] = err
				return
			}
			pages[page] = result.Items
		}(page)
	}

	// Every started fetch runs to completion, even after a page has failed
	// or the context was cancelled.
	wg.Wait()

	for page := 2; page <= totalPages; page++ {
		if errs[page] != nil {
			runsTotal.WithLabelValues("failed").Inc()
			f.logger.Warn().
				Err(errs[page]).
				Int("page", page).
				Int("total_pages", totalPages).
				Dur("duration", time.Since(start)).
				Msg("Fetch failed - discarding results")
			return nil, errs[page]
		}
	}

	total := 0
	for page := 1; page <= totalPages; page++ {
		total += len(pages[page])
	}

	items := make([]T, 0, total)
	for page := 1; page <= totalPages; page++ {
		items = append(items, pages[page]...)
	}

	runsTotal.WithLabelValues("completed").Inc()
	f.logger.Info().
		Int("pages", totalPages).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return items, nil
}

// fetchPage runs a single page fetch with the configured timeout and wraps
// failures with the page number.
func (f *Fetcher[T]) fetchPage(ctx context.Context, page int) (Page[T], error) {
	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.Timeout)
		defer cancel()
	}

	inflightFetches.Inc()
	start := time.Now()
	result, err := f.fetch(ctx, page)
	pageFetchDuration.Observe(time.Since(start).Seconds())
	inflightFetches.Dec()

	if err != nil {
		pagesFetchedTotal.WithLabelValues("error").Inc()
		f.logger.Warn().
			Err(err).
			Int("page", page).
			Msg("Page fetch failed")
		return Page[T]{}, &FetchError{Page: page, Err: err}
	}

	pagesFetchedTotal.WithLabelValues("ok").Inc()
	f.logger.Debug().
		Int("page", page).
		Int("items", len(result.Items)).
		Dur("duration", time.Since(start)).
		Msg("Page fetched")

	return result, nil
}
