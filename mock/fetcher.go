package mock

import (
	"context"

	"github.com/fwojciec/newsrelay"
)

// Compile-time interface verification.
var _ newsrelay.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newsrelay.Fetcher. Concurrent crawls
// call FetchFn from several goroutines, so it must be safe for that use.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

// Fetch returns the markup served for url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close releases the fetcher. The CLI always closes its fetcher, so tests
// that drive it must set CloseFn.
func (f *Fetcher) Close() error {
	return f.CloseFn()
}
