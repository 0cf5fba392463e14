// Package paginate provides bounded parallel fetching for paginated data sets.
//
// Many APIs only reveal the total number of pages once the first page has
// been retrieved. This package fetches page 1 up front to learn the page
// count, fetches the remaining pages in parallel under a configurable
// concurrency limit, and returns every item flattened in ascending page
// order regardless of completion order.
//
// Example usage:
//
//	fetch := source.Pages[Order](client, "/v1/orders/")
//	items, err := paginate.All(ctx, 10, fetch)
//
// The fetcher:
//   - Fetches page 1 alone to determine the total page count
//   - Fetches pages 2..N in parallel, at most MaxConcurrency at a time
//   - Waits for every started fetch before returning
//   - Reassembles results in page order
//   - Fails the whole run on any page error (no partial results)
package paginate
