// Package htmltomarkdown renders extracted article markup as Markdown for
// terminal previews.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/newsrelay"
)

// Ensure Converter implements newsrelay.Converter at compile time.
var _ newsrelay.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", newsrelay.Errorf(newsrelay.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", newsrelay.WrapError(newsrelay.EPARSE, err, "convert to markdown")
	}

	return result, nil
}

// ConvertArticle renders article as a Markdown document with the title as
// a heading and a source line at the end.
func (c *Converter) ConvertArticle(article *newsrelay.Article) (string, error) {
	if !article.HasBody() {
		return "", newsrelay.Errorf(newsrelay.EINVALID, "article %s has no body", article.URL)
	}

	body, err := c.Convert(article.Body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if article.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", article.Title)
	}
	b.WriteString(strings.TrimSpace(body))
	fmt.Fprintf(&b, "\n\n%s: <%s>\n", newsrelay.DefaultAttributionLabel, article.URL)
	return b.String(), nil
}
