package newsrelay

import "context"

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// History remembers article URLs that were already published.
type History interface {
	// Add records url as published.
	Add(url string)

	// Test returns true if url might have been published.
	// False positives are possible; false negatives are not.
	Test(url string) bool
}
