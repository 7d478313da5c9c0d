package newsrelay

import (
	"context"
	"fmt"
	"html"
)

// PostStatus is the publication state requested for a post.
type PostStatus string

// Post statuses accepted by the publishing endpoint.
const (
	StatusDraft   PostStatus = "draft"
	StatusPublish PostStatus = "publish"
)

// DefaultAttributionLabel prefixes the link back to the original article.
const DefaultAttributionLabel = "Source"

// Post is a creation request sent to the publisher.
type Post struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Status  PostStatus `json:"status"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Content == "" {
		return Errorf(EINVALID, "post content required")
	}
	switch p.Status {
	case StatusDraft, StatusPublish:
	default:
		return Errorf(EINVALID, "invalid post status %q", p.Status)
	}
	return nil
}

// PublishedPost identifies a post created by the publisher.
type PublishedPost struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

// Publisher creates posts on a remote content-management endpoint.
type Publisher interface {
	CreatePost(ctx context.Context, post *Post) (*PublishedPost, error)
}

// PostContent returns the article body followed by an attribution block
// linking the original URL.
func PostContent(article *Article, label string) string {
	if label == "" {
		label = DefaultAttributionLabel
	}
	u := html.EscapeString(article.URL)
	return fmt.Sprintf("\n%s\n\n<hr>\n\n<p>%s: <a href=\"%s\" target=\"_blank\">%s</a></p>\n",
		article.Body, html.EscapeString(label), u, u)
}
