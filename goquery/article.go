package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrelay"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	titleSelector     = "h1"
	titleSignature    = "headline"
	containerSelector = "div, article"
	blockSelector     = "p, h2, h3, ul, ol"
)

var _ newsrelay.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor locates the article body among class-signature matched
// containers and re-serializes its block elements as normalized markup:
// <p>, <h3>, <ul> and <ol> with <li> items.
type ArticleExtractor struct {
	bodies        []newsrelay.MatchRule
	noise         []newsrelay.MatchRule
	minTextLength int
}

// NewArticleExtractor creates a new ArticleExtractor.
func NewArticleExtractor(opts ...Option) *ArticleExtractor {
	c := newConfig(opts)
	return &ArticleExtractor{
		bodies:        c.rules.Bodies,
		noise:         c.rules.Noise,
		minTextLength: c.minTextLength,
	}
}

// ExtractArticle extracts the headline and normalized body from html.
// If no body container matches, the body is empty and no further work is done.
func (e *ArticleExtractor) ExtractArticle(rawHTML string, url string) (*newsrelay.Article, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	article := &newsrelay.Article{
		Title: extractTitle(doc),
		URL:   url,
	}

	containers := e.findContainers(doc)
	article.Containers = len(containers)
	if len(containers) == 0 {
		return article, nil
	}

	var fragments []string
	for _, container := range containers {
		fragments = append(fragments, e.serialize(container)...)
	}
	article.Body = strings.Join(fragments, "\n")

	return article, nil
}

// Normalize re-serializes an arbitrary HTML fragment with the same block,
// noise and length rules applied to body containers. The whole fragment is
// treated as one container.
func (e *ArticleExtractor) Normalize(rawHTML string) (string, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return "", err
	}
	return strings.Join(e.serialize(doc.Selection), "\n"), nil
}

// extractTitle returns the text of the first h1 whose class mentions "headline".
func extractTitle(doc *goquery.Document) string {
	title := doc.Find(titleSelector).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return classContains(sel, titleSignature, true)
	}).First()
	return strings.TrimSpace(title.Text())
}

// findContainers returns body containers in document order. Containers
// nested inside an earlier match are dropped so their text is not emitted twice.
func (e *ArticleExtractor) findContainers(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection
	matched := make(map[*html.Node]bool)

	doc.Find(containerSelector).Each(func(_ int, sel *goquery.Selection) {
		if !e.isContainer(sel) {
			return
		}
		node := sel.Get(0)
		matched[node] = true
		if hasAncestor(node, matched) {
			return
		}
		containers = append(containers, sel)
	})

	return containers
}

func (e *ArticleExtractor) isContainer(sel *goquery.Selection) bool {
	for _, rule := range e.bodies {
		if classContains(sel, rule.Signature, true) {
			return true
		}
	}
	return false
}

// serialize walks block elements of container in document order and
// returns one normalized fragment per element that survives filtering.
func (e *ArticleExtractor) serialize(container *goquery.Selection) []string {
	var fragments []string
	lists := make(map[*html.Node]bool)

	container.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if hasAncestor(node, lists) {
			return
		}
		isList := node.DataAtom == atom.Ul || node.DataAtom == atom.Ol
		if isList {
			lists[node] = true
		}

		if e.isNoise(sel) || e.inNoise(sel, container) {
			return
		}
		e.removeNoise(sel)

		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) <= e.minTextLength {
			return
		}

		switch {
		case node.DataAtom == atom.H2 || node.DataAtom == atom.H3:
			fragments = append(fragments, wrap("h3", text))
		case isList:
			fragments = append(fragments, serializeList(sel, node.Data))
		default:
			fragments = append(fragments, wrap("p", text))
		}
	})

	return fragments
}

// removeNoise detaches descendants whose class list carries a noise token.
// It must run before text extraction so noise text never reaches the output.
func (e *ArticleExtractor) removeNoise(sel *goquery.Selection) {
	if len(e.noise) == 0 {
		return
	}
	sel.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return e.isNoise(s)
	}).Remove()
}

// inNoise reports whether sel sits inside a noise element of container.
func (e *ArticleExtractor) inNoise(sel, container *goquery.Selection) bool {
	if len(e.noise) == 0 {
		return false
	}
	return sel.ParentsUntilSelection(container).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return e.isNoise(s)
	}).Length() > 0
}

func (e *ArticleExtractor) isNoise(sel *goquery.Selection) bool {
	for _, rule := range e.noise {
		if sel.HasClass(rule.Signature) {
			return true
		}
	}
	return false
}

// serializeList re-wraps the items of a list, preserving its type.
// Items with no text are dropped rather than emitted as empty <li></li>.
func serializeList(list *goquery.Selection, tag string) string {
	var items []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := strings.TrimSpace(li.Text())
		if text == "" {
			return
		}
		items = append(items, wrap("li", text))
	})
	return "<" + tag + ">" + strings.Join(items, "\n") + "</" + tag + ">"
}

// textEscaper escapes the characters that are significant in element text.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func wrap(tag, text string) string {
	return "<" + tag + ">" + textEscaper.Replace(text) + "</" + tag + ">"
}
