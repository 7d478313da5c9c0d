// Package trafilatura provides a fallback article extractor backed by
// go-trafilatura, for pages whose markup the class heuristics miss.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/newsrelay"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newsrelay.FallbackExtractor at compile time.
var _ newsrelay.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Comments and tables are excluded; a news body needs neither.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*newsrelay.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsrelay.Errorf(newsrelay.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, newsrelay.WrapError(newsrelay.EPARSE, err, "trafilatura")
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, newsrelay.WrapError(newsrelay.EPARSE, err, "render content")
		}
	}

	return &newsrelay.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
