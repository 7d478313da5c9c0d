// Package readability provides a fallback article extractor backed by
// go-readability, for pages whose markup the class heuristics miss.
package readability

import (
	"strings"

	"github.com/fwojciec/newsrelay"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsrelay.FallbackExtractor at compile time.
var _ newsrelay.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Pages that
// readability judges unreadable yield an empty result rather than an error.
func (e *Extractor) Extract(rawHTML string) (*newsrelay.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsrelay.Errorf(newsrelay.EINVALID, "empty HTML input")
	}

	if !readability.Check(strings.NewReader(rawHTML)) {
		return &newsrelay.ExtractResult{}, nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, newsrelay.WrapError(newsrelay.EPARSE, err, "readability")
	}

	return &newsrelay.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
