// Package bloom remembers published article URLs using a Bloom filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/newsrelay"
)

// Sizing used for the publish history when none is given.
const (
	DefaultExpectedURLs      = 100000
	DefaultFalsePositiveRate = 0.001
)

var _ newsrelay.History = (*Filter)(nil)

// Filter is a concurrency-safe Bloom filter over article URLs.
// URLs are keyed without their fragment or trailing slash, so
// "https://x.com/a/" and "https://x.com/a#top" are the same article.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewHistory creates a default-sized filter seeded with urls.
func NewHistory(urls []string) *Filter {
	f := NewFilter(max(DefaultExpectedURLs, uint(len(urls))*2), DefaultFalsePositiveRate)
	for _, u := range urls {
		f.Add(u)
	}
	return f
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(key(url))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(key(url))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}

func key(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	}
	return u.String()
}
