package mock

import (
	"context"

	"github.com/fwojciec/newsrelay"
)

// Compile-time interface verification.
var (
	_ newsrelay.DomainLimiter = (*DomainLimiter)(nil)
	_ newsrelay.History       = (*History)(nil)
)

// DomainLimiter is a mock implementation of newsrelay.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// History is a mock implementation of newsrelay.History.
type History struct {
	AddFn  func(url string)
	TestFn func(url string) bool
}

func (h *History) Add(url string) {
	h.AddFn(url)
}

func (h *History) Test(url string) bool {
	return h.TestFn(url)
}
