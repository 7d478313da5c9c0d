package newsrelay

// Headline is a single entry discovered on a headline page.
type Headline struct {
	// Title is the trimmed visible text of the headline link. Never empty.
	Title string `json:"title"`

	// URL is the absolute article URL.
	URL string `json:"url"`
}

// HeadlineExtractor locates article links on a headline page.
type HeadlineExtractor interface {
	// ExtractHeadlines returns at most maxCount headlines in discovery order,
	// deduplicated by title. Relative links are resolved against baseURL.
	// A page with no matching elements yields an empty slice, not an error.
	ExtractHeadlines(html string, baseURL string, maxCount int) ([]Headline, error)
}
