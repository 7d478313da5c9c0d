package newsrelay

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be normalized markup (e.g., an Article body).
	Convert(html string) (string, error)
}
