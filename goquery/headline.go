package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrelay"
)

// headlineSelector lists the elements that may carry a headline signature.
const headlineSelector = "h3, h2, a"

var _ newsrelay.HeadlineExtractor = (*HeadlineExtractor)(nil)

// HeadlineExtractor finds article links on a headline page by matching
// class-name signatures in priority order.
type HeadlineExtractor struct {
	rules []newsrelay.MatchRule
}

// NewHeadlineExtractor creates a new HeadlineExtractor.
func NewHeadlineExtractor(opts ...Option) *HeadlineExtractor {
	c := newConfig(opts)
	return &HeadlineExtractor{rules: c.rules.Headlines}
}

// ExtractHeadlines scans html for heading or anchor elements whose class
// attribute contains a headline signature (case-sensitive substring).
// Matches for earlier signatures come first. Titles are deduplicated by
// their trimmed visible text, so two links with the same title but
// different URLs yield a single headline.
func (e *HeadlineExtractor) ExtractHeadlines(html string, baseURL string, maxCount int) ([]newsrelay.Headline, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, newsrelay.Errorf(newsrelay.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	headlines := []newsrelay.Headline{}
	if maxCount <= 0 {
		return headlines, nil
	}

	var candidates []*goquery.Selection
	for _, rule := range e.rules {
		doc.Find(headlineSelector).Each(func(_ int, sel *goquery.Selection) {
			if classContains(sel, rule.Signature, false) {
				candidates = append(candidates, sel)
			}
		})
	}

	seen := make(map[string]bool)
	for _, sel := range candidates {
		link := sel
		if !sel.Is("a") {
			link = sel.Find("a").First()
			if link.Length() == 0 {
				continue
			}
		}

		title := strings.TrimSpace(link.Text())
		if title == "" || seen[title] {
			continue
		}

		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
			continue
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			continue
		}

		seen[title] = true
		headlines = append(headlines, newsrelay.Headline{Title: title, URL: resolved})
		if len(headlines) >= maxCount {
			break
		}
	}

	return headlines, nil
}
