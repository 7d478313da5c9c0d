package goquery

import "github.com/fwojciec/newsrelay"

var _ newsrelay.ArticleExtractor = (*FallbackArticleExtractor)(nil)

// FallbackArticleExtractor runs the signature-based extractor first and,
// when it finds no body, normalizes the output of a generic main-content
// extractor instead.
type FallbackArticleExtractor struct {
	primary  *ArticleExtractor
	fallback newsrelay.FallbackExtractor
}

// NewFallbackArticleExtractor creates a new FallbackArticleExtractor.
func NewFallbackArticleExtractor(primary *ArticleExtractor, fallback newsrelay.FallbackExtractor) *FallbackArticleExtractor {
	return &FallbackArticleExtractor{primary: primary, fallback: fallback}
}

// ExtractArticle returns the primary result unless its body is empty. A
// failing fallback leaves the empty primary result in place.
func (e *FallbackArticleExtractor) ExtractArticle(html string, url string) (*newsrelay.Article, error) {
	article, err := e.primary.ExtractArticle(html, url)
	if err != nil || article.HasBody() {
		return article, err
	}

	result, err := e.fallback.Extract(html)
	if err != nil || result.ContentHTML == "" {
		return article, nil
	}

	body, err := e.primary.Normalize(result.ContentHTML)
	if err != nil || body == "" {
		return article, nil
	}

	article.Body = body
	if article.Title == "" {
		article.Title = result.Title
	}
	return article, nil
}
