package newsrelay

import "context"

// Fetcher retrieves raw HTML markup from URLs.
type Fetcher interface {
	// Fetch makes a single attempt to retrieve the markup at url.
	// Transport failures (network errors, timeouts, non-2xx statuses) are
	// reported as EFETCH errors; partial markup is never returned as success.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the Fetcher.
	Close() error
}
