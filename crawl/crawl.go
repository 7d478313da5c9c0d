// Package crawl drives the headline-to-article pipeline. It fetches a
// headline page, extracts article links, then fetches and extracts each
// article, producing exactly one outcome per headline.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/newsrelay"
	"golang.org/x/sync/errgroup"
)

// Delays used between article requests in sequential mode.
const (
	DefaultFetchDelay   = 2 * time.Second
	DefaultArticleDelay = 3 * time.Second
)

// Crawler extracts articles linked from a headline page.
//
// With Concurrency <= 1 articles are processed one at a time, waiting
// FetchDelay before each fetch and ArticleDelay after each article is
// reported. Zero delays are honored, which tests rely on. With
// Concurrency > 1 articles are fetched in parallel and RateLimiter spaces
// requests to each host instead.
type Crawler struct {
	Fetcher      newsrelay.Fetcher
	Headlines    newsrelay.HeadlineExtractor
	Articles     newsrelay.ArticleExtractor
	RateLimiter  newsrelay.DomainLimiter
	Concurrency  int
	FetchDelay   time.Duration
	ArticleDelay time.Duration

	// RetryDelays enables article fetch retries. Nil means one attempt.
	RetryDelays []time.Duration

	// BaseURL resolves relative headline links. Defaults to the page URL.
	BaseURL string

	// Logger receives a line for every retried article fetch. Optional.
	Logger *slog.Logger
}

// ProgressEvent reports progress during a crawl or relay run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error

	// Outcome is set for ProgressCompleted and ProgressFailed.
	Outcome *newsrelay.Outcome
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressPublished
	ProgressPublishFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress. Calls are never
// concurrent.
type ProgressFunc func(event ProgressEvent)

// Crawl fetches pageURL, extracts up to maxArticles headlines and processes
// each linked article. A failure to fetch or parse the headline page is
// returned as an error. Per-article failures are recorded in the returned
// outcomes, which follow headline discovery order.
//
// If ctx is canceled mid-run the outcomes produced so far are returned
// together with the context error.
func (c *Crawler) Crawl(ctx context.Context, pageURL string, maxArticles int, progress ProgressFunc) ([]*newsrelay.Outcome, error) {
	// The headline page counts against its host's budget so the first
	// article request to the same origin is spaced from it.
	var limiter newsrelay.DomainLimiter
	if c.Concurrency > 1 {
		limiter = c.RateLimiter
		if limiter == nil {
			limiter = NewDomainLimiter(DefaultRequestsPerSecond)
		}
		if err := limiter.Wait(ctx, hostOf(pageURL)); err != nil {
			return nil, fmt.Errorf("headline page: %w", err)
		}
	}

	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("headline page: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = pageURL
	}
	headlines, err := c.Headlines.ExtractHeadlines(html, base, maxArticles)
	if err != nil {
		return nil, fmt.Errorf("headline extraction: %w", err)
	}

	r := &reporter{progress: progress, total: len(headlines)}
	r.emit(ProgressEvent{Type: ProgressStarted})

	var outcomes []*newsrelay.Outcome
	if c.Concurrency > 1 {
		outcomes, err = c.crawlConcurrent(ctx, headlines, limiter, r)
	} else {
		outcomes, err = c.crawlSequential(ctx, headlines, r)
	}
	if err != nil {
		return outcomes, err
	}

	r.emit(ProgressEvent{Type: ProgressFinished, Completed: len(outcomes)})
	return outcomes, nil
}

func (c *Crawler) crawlSequential(ctx context.Context, headlines []newsrelay.Headline, r *reporter) ([]*newsrelay.Outcome, error) {
	outcomes := make([]*newsrelay.Outcome, 0, len(headlines))
	for i, h := range headlines {
		if err := sleep(ctx, c.FetchDelay); err != nil {
			return outcomes, err
		}

		o := c.process(ctx, i, h)
		outcomes = append(outcomes, o)
		r.report(o)

		// No request follows the last article.
		if i == len(headlines)-1 {
			break
		}
		if err := sleep(ctx, c.ArticleDelay); err != nil {
			return outcomes, err
		}
	}
	return outcomes, nil
}

func (c *Crawler) crawlConcurrent(ctx context.Context, headlines []newsrelay.Headline, limiter newsrelay.DomainLimiter, r *reporter) ([]*newsrelay.Outcome, error) {

	results := make([]*newsrelay.Outcome, len(headlines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	for i, h := range headlines {
		g.Go(func() error {
			if err := limiter.Wait(gctx, hostOf(h.URL)); err != nil {
				return err
			}
			o := c.process(gctx, i, h)
			results[i] = o
			r.report(o)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		outcomes := make([]*newsrelay.Outcome, 0, len(results))
		for _, o := range results {
			if o != nil {
				outcomes = append(outcomes, o)
			}
		}
		return outcomes, err
	}
	return results, nil
}

// retryLog adapts Logger to the retry helper. Nil when no logger is set.
func (c *Crawler) retryLog() LogFunc {
	if c.Logger == nil {
		return nil
	}
	return func(format string, args ...any) {
		c.Logger.Info(fmt.Sprintf(format, args...))
	}
}

// process fetches and extracts one article. It never fails; problems are
// classified into the returned outcome.
func (c *Crawler) process(ctx context.Context, position int, h newsrelay.Headline) *newsrelay.Outcome {
	o := &newsrelay.Outcome{Position: position, Headline: h}

	fetch := func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, h.URL, fetch, c.retryLog(), c.RetryDelays)
	if err != nil {
		o.Reason = newsrelay.ReasonFetchError
		o.Err = err
		return o
	}

	article, err := c.Articles.ExtractArticle(html, h.URL)
	if err != nil {
		o.Reason = newsrelay.ReasonParseError
		o.Err = err
		return o
	}

	o.Article = article
	if !article.HasBody() {
		o.Reason = newsrelay.ReasonEmptyContent
	}
	return o
}

// reporter serializes progress callbacks and tracks completion counts.
type reporter struct {
	mu        sync.Mutex
	progress  ProgressFunc
	total     int
	completed int
}

func (r *reporter) emit(event ProgressEvent) {
	if r.progress == nil {
		return
	}
	event.Total = r.total
	r.progress(event)
}

func (r *reporter) report(o *newsrelay.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completed++
	event := ProgressEvent{
		Type:      ProgressCompleted,
		Completed: r.completed,
		URL:       o.Headline.URL,
		Outcome:   o,
	}
	if !o.Succeeded() {
		event.Type = ProgressFailed
		event.Error = o.Err
	}
	r.emit(event)
}
