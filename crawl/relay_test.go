package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsrelay"
	"github.com/fwojciec/newsrelay/crawl"
	"github.com/fwojciec/newsrelay/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publisher records every post and assigns sequential IDs.
func publisher(posts *[]*newsrelay.Post) *mock.Publisher {
	return &mock.Publisher{
		CreatePostFn: func(_ context.Context, post *newsrelay.Post) (*newsrelay.PublishedPost, error) {
			*posts = append(*posts, post)
			id := int64(len(*posts))
			return &newsrelay.PublishedPost{ID: id, Link: fmt.Sprintf("https://blog.example.com/?p=%d", id)}, nil
		},
	}
}

// runLog captures the saved run.
func runLog(saved **newsrelay.Run) *mock.RunLog {
	return &mock.RunLog{
		SaveRunFn: func(_ context.Context, run *newsrelay.Run) error {
			*saved = run
			return nil
		},
	}
}

func TestRelay_Run(t *testing.T) {
	t.Parallel()

	t.Run("publishes successes and records failures in order", func(t *testing.T) {
		t.Parallel()

		var posts []*newsrelay.Post
		var saved *newsrelay.Run
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher("https://edition.cnn.com/story-2"),
				Headlines: headlineExtractor(headlines(5)),
				Articles:  articleExtractor(),
			},
			Publisher: publisher(&posts),
			RunLogs:   []newsrelay.RunLog{runLog(&saved)},
			Now:       func() time.Time { return now },
		}

		run, err := r.Run(context.Background(), pageURL, 3, nil)

		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Same(t, run, saved)
		assert.Equal(t, pageURL, run.HeadlineURL)
		assert.Equal(t, now, run.StartedAt)
		assert.Equal(t, 2, run.Published())
		assert.Equal(t, 1, run.Failed())

		require.Len(t, run.Records, 3)
		assert.Equal(t, newsrelay.RecordSuccess, run.Records[0].Status)
		assert.Equal(t, int64(1), run.Records[0].PostID)
		assert.Equal(t, "https://edition.cnn.com/story-1", run.Records[0].Article.URL)
		assert.NotEmpty(t, run.Records[0].ContentHash)

		assert.Equal(t, newsrelay.RecordFailed, run.Records[1].Status)
		assert.Equal(t, newsrelay.ReasonFetchError, run.Records[1].Reason)
		assert.Equal(t, "Story 2", run.Records[1].Article.Title)
		assert.Contains(t, run.Records[1].Error, "timeout")
		assert.Empty(t, run.Records[1].Article.Content)

		assert.Equal(t, newsrelay.RecordSuccess, run.Records[2].Status)
		assert.Equal(t, int64(2), run.Records[2].PostID)

		require.Len(t, posts, 2)
		assert.Equal(t, "Title of https://edition.cnn.com/story-1", posts[0].Title)
		assert.Equal(t, newsrelay.StatusPublish, posts[0].Status)
		assert.True(t, strings.HasPrefix(posts[0].Content, "\n<p>body of https://edition.cnn.com/story-1</p>"))
		assert.Contains(t, posts[0].Content, `Source: <a href="https://edition.cnn.com/story-1"`)
	})

	t.Run("records empty content with fixed message", func(t *testing.T) {
		t.Parallel()

		var saved *newsrelay.Run
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(),
				Headlines: headlineExtractor(headlines(1)),
				Articles: &mock.ArticleExtractor{
					ExtractArticleFn: func(_ string, url string) (*newsrelay.Article, error) {
						return &newsrelay.Article{URL: url}, nil
					},
				},
			},
			Publisher: &mock.Publisher{},
			RunLogs:   []newsrelay.RunLog{runLog(&saved)},
		}

		run, err := r.Run(context.Background(), pageURL, 1, nil)

		require.NoError(t, err)
		require.Len(t, run.Records, 1)
		assert.Equal(t, newsrelay.RecordFailed, run.Records[0].Status)
		assert.Equal(t, newsrelay.ReasonEmptyContent, run.Records[0].Reason)
		assert.Equal(t, "Empty or no content found", run.Records[0].Error)
	})

	t.Run("records publish failure", func(t *testing.T) {
		t.Parallel()

		var events []crawl.ProgressType
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(),
				Headlines: headlineExtractor(headlines(1)),
				Articles:  articleExtractor(),
			},
			Publisher: &mock.Publisher{
				CreatePostFn: func(_ context.Context, _ *newsrelay.Post) (*newsrelay.PublishedPost, error) {
					return nil, errors.New("HTTP 401")
				},
			},
		}

		run, err := r.Run(context.Background(), pageURL, 1, func(e crawl.ProgressEvent) {
			events = append(events, e.Type)
		})

		require.NoError(t, err)
		require.Len(t, run.Records, 1)
		rec := run.Records[0]
		assert.Equal(t, newsrelay.RecordFailed, rec.Status)
		assert.Equal(t, "Failed to create post: HTTP 401", rec.Error)
		assert.Equal(t, "<p>body of https://edition.cnn.com/story-1</p>", rec.Article.Content)
		assert.Contains(t, events, crawl.ProgressPublishFailed)
	})

	t.Run("skips articles already in history", func(t *testing.T) {
		t.Parallel()

		var posts []*newsrelay.Post
		var added []string
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(),
				Headlines: headlineExtractor(headlines(2)),
				Articles:  articleExtractor(),
			},
			Publisher: publisher(&posts),
			History: &mock.History{
				TestFn: func(url string) bool { return url == "https://edition.cnn.com/story-1" },
				AddFn:  func(url string) { added = append(added, url) },
			},
		}

		var skipped []string
		run, err := r.Run(context.Background(), pageURL, 2, func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressSkipped {
				skipped = append(skipped, e.URL)
			}
		})

		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Len(t, run.Records, 1)
		assert.Equal(t, "https://edition.cnn.com/story-2", run.Records[0].Article.URL)
		assert.Equal(t, []string{"https://edition.cnn.com/story-1"}, skipped)
		assert.Equal(t, []string{"https://edition.cnn.com/story-2"}, added)
	})

	t.Run("uses configured status and attribution label", func(t *testing.T) {
		t.Parallel()

		var posts []*newsrelay.Post
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(),
				Headlines: headlineExtractor(headlines(1)),
				Articles:  articleExtractor(),
			},
			Publisher:        publisher(&posts),
			Status:           newsrelay.StatusDraft,
			AttributionLabel: "Originally published at",
		}

		_, err := r.Run(context.Background(), pageURL, 1, nil)

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, newsrelay.StatusDraft, posts[0].Status)
		assert.Contains(t, posts[0].Content, "<p>Originally published at: <a")
	})

	t.Run("falls back to headline title when article has none", func(t *testing.T) {
		t.Parallel()

		var posts []*newsrelay.Post
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(),
				Headlines: headlineExtractor(headlines(1)),
				Articles: &mock.ArticleExtractor{
					ExtractArticleFn: func(html string, url string) (*newsrelay.Article, error) {
						return &newsrelay.Article{URL: url, Body: html}, nil
					},
				},
			},
			Publisher: publisher(&posts),
		}

		run, err := r.Run(context.Background(), pageURL, 1, nil)

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Story 1", posts[0].Title)
		assert.Equal(t, "Story 1", run.Records[0].Article.Title)
	})

	t.Run("returns headline page error without logging", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(pageURL),
				Headlines: headlineExtractor(headlines(1)),
				Articles:  articleExtractor(),
			},
			Publisher: &mock.Publisher{},
			RunLogs:   []newsrelay.RunLog{&mock.RunLog{}},
		}

		run, err := r.Run(context.Background(), pageURL, 1, nil)

		require.Error(t, err)
		assert.Nil(t, run)
	})

	t.Run("attempts every run log and joins errors", func(t *testing.T) {
		t.Parallel()

		var saved *newsrelay.Run
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:   fetcher(),
				Headlines: headlineExtractor(nil),
				Articles:  articleExtractor(),
			},
			Publisher: &mock.Publisher{},
			RunLogs: []newsrelay.RunLog{
				&mock.RunLog{
					SaveRunFn: func(_ context.Context, _ *newsrelay.Run) error {
						return errors.New("disk full")
					},
				},
				runLog(&saved),
			},
		}

		run, err := r.Run(context.Background(), pageURL, 3, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		require.NotNil(t, run)
		assert.Same(t, run, saved)
		assert.Empty(t, run.Records)
	})

	t.Run("logs partial run when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var posts []*newsrelay.Post
		var saved *newsrelay.Run
		r := &crawl.Relay{
			Crawler: &crawl.Crawler{
				Fetcher:      fetcher(),
				Headlines:    headlineExtractor(headlines(3)),
				Articles:     articleExtractor(),
				ArticleDelay: time.Hour,
			},
			Publisher: publisher(&posts),
			RunLogs: []newsrelay.RunLog{&mock.RunLog{
				SaveRunFn: func(ctx context.Context, run *newsrelay.Run) error {
					saved = run
					return ctx.Err()
				},
			}},
		}

		run, err := r.Run(ctx, pageURL, 3, func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressPublished {
				cancel()
			}
		})

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, run)
		assert.Same(t, run, saved)
		assert.Len(t, run.Records, 1)
	})
}
