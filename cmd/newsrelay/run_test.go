package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/newsrelay"
	main "github.com/fwojciec/newsrelay/cmd/newsrelay"
	"github.com/fwojciec/newsrelay/crawl"
	"github.com/fwojciec/newsrelay/goquery"
	"github.com/fwojciec/newsrelay/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCrawler() *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher:   siteFetcher(),
		Headlines: goquery.NewHeadlineExtractor(),
		Articles:  goquery.NewArticleExtractor(),
	}
}

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rejects max below one", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Crawler: testCrawler(),
		}

		cmd := &main.RunCmd{URL: "https://edition.cnn.com/world", Max: 0}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, newsrelay.EINVALID, newsrelay.ErrorCode(err))
		assert.Contains(t, stderr.String(), "max articles")
	})

	t.Run("dry run only extracts", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: testCrawler(),
		}

		cmd := &main.RunCmd{URL: "https://edition.cnn.com/world", Max: 1}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 1 headlines")
		assert.Contains(t, stdout.String(), "Extracted 1 of 1 articles (dry run)")
	})

	t.Run("reports publish failures", func(t *testing.T) {
		t.Parallel()

		var saved *newsrelay.Run
		relay := &crawl.Relay{
			Crawler: testCrawler(),
			Publisher: &mock.Publisher{
				CreatePostFn: func(ctx context.Context, post *newsrelay.Post) (*newsrelay.PublishedPost, error) {
					return nil, errors.New("HTTP 401")
				},
			},
			RunLogs: []newsrelay.RunLog{&mock.RunLog{
				SaveRunFn: func(ctx context.Context, run *newsrelay.Run) error {
					saved = run
					return nil
				},
			}},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Crawler: relay.Crawler,
			Relay:   relay,
		}

		cmd := &main.RunCmd{URL: "https://edition.cnn.com/world", Max: 1}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "publish failed https://edition.cnn.com/world/geneva: HTTP 401")
		assert.Contains(t, stdout.String(), "Published 0, failed 1")
		require.NotNil(t, saved)
		assert.Equal(t, "Failed to create post: HTTP 401", saved.Records[0].Error)
	})

	t.Run("returns headline page errors", func(t *testing.T) {
		t.Parallel()

		crawler := testCrawler()
		crawler.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", newsrelay.Errorf(newsrelay.EFETCH, "HTTP 503 fetching %s", url)
			},
		}
		relay := &crawl.Relay{Crawler: crawler, Publisher: &mock.Publisher{}}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Crawler: crawler,
			Relay:   relay,
		}

		cmd := &main.RunCmd{URL: "https://edition.cnn.com/world", Max: 3}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, newsrelay.EFETCH, newsrelay.ErrorCode(err))
		assert.Contains(t, stderr.String(), "HTTP 503")
		assert.NotContains(t, stdout.String(), "Published")
	})
}
