package mock

import "github.com/fwojciec/newsrelay"

// Compile-time interface verification.
var (
	_ newsrelay.HeadlineExtractor = (*HeadlineExtractor)(nil)
	_ newsrelay.ArticleExtractor  = (*ArticleExtractor)(nil)
	_ newsrelay.FallbackExtractor = (*FallbackExtractor)(nil)
)

// HeadlineExtractor is a mock implementation of newsrelay.HeadlineExtractor.
type HeadlineExtractor struct {
	ExtractHeadlinesFn func(html string, baseURL string, maxCount int) ([]newsrelay.Headline, error)
}

func (e *HeadlineExtractor) ExtractHeadlines(html string, baseURL string, maxCount int) ([]newsrelay.Headline, error) {
	return e.ExtractHeadlinesFn(html, baseURL, maxCount)
}

// ArticleExtractor is a mock implementation of newsrelay.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string, url string) (*newsrelay.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html string, url string) (*newsrelay.Article, error) {
	return e.ExtractArticleFn(html, url)
}

// FallbackExtractor is a mock implementation of newsrelay.FallbackExtractor.
type FallbackExtractor struct {
	ExtractFn func(html string) (*newsrelay.ExtractResult, error)
}

func (e *FallbackExtractor) Extract(html string) (*newsrelay.ExtractResult, error) {
	return e.ExtractFn(html)
}
