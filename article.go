package newsrelay

// Article holds the content extracted from a single article page.
type Article struct {
	// Title is the article headline. Empty if no headline element was found.
	Title string `json:"title"`

	// URL is the article page the content was extracted from.
	URL string `json:"url"`

	// Body is the normalized markup fragment. An empty body means no
	// qualifying content was found.
	Body string `json:"content,omitempty"`

	// Containers is the number of body containers matched on the page.
	Containers int `json:"-"`
}

// HasBody reports whether any qualifying content was extracted.
func (a *Article) HasBody() bool {
	return a != nil && a.Body != ""
}

// ArticleExtractor extracts the headline and normalized body of an article page.
type ArticleExtractor interface {
	// ExtractArticle parses html fetched from url. An empty Body in the
	// result signals that no content was found; an error is returned only
	// when the markup could not be processed at all.
	ExtractArticle(html string, url string) (*Article, error)
}

// ExtractResult holds the output of a generic main-content extractor.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as HTML with boilerplate removed.
	ContentHTML string
}

// FallbackExtractor is a generic main-content extractor consulted when the
// signature-based extractor finds no body.
type FallbackExtractor interface {
	Extract(html string) (*ExtractResult, error)
}
