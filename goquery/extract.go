// Package goquery implements newsrelay's headline and article extractors
// using CSS-style queries over the parsed document.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrelay"
	"golang.org/x/net/html"
)

// MinTextLength is the default floor for extracted element text. Elements
// whose trimmed text has this many runes or fewer are treated as captions,
// bylines or empty wrappers and dropped.
const MinTextLength = 20

type config struct {
	rules         newsrelay.Rules
	minTextLength int
}

func newConfig(opts []Option) config {
	c := config{
		rules:         newsrelay.DefaultRules(),
		minTextLength: MinTextLength,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures an extractor.
type Option func(*config)

// WithRules replaces the default class-signature rules.
func WithRules(rules newsrelay.Rules) Option {
	return func(c *config) {
		c.rules = rules
	}
}

// WithMinTextLength sets the low-signal text floor.
func WithMinTextLength(n int) Option {
	return func(c *config) {
		c.minTextLength = n
	}
}

func parseDocument(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsrelay.WrapError(newsrelay.EPARSE, err, "failed to parse HTML")
	}
	return doc, nil
}

// classContains reports whether the class attribute of sel contains sig as a
// substring. When fold is true both sides are compared lower-cased.
func classContains(sel *goquery.Selection, sig string, fold bool) bool {
	class, ok := sel.Attr("class")
	if !ok || class == "" {
		return false
	}
	if fold {
		return strings.Contains(strings.ToLower(class), strings.ToLower(sig))
	}
	return strings.Contains(class, sig)
}

// hasAncestor reports whether any ancestor of n is in set.
func hasAncestor(n *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base. Returns empty string if href
// cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
