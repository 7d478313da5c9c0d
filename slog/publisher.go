package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsrelay"
)

// Ensure LoggingPublisher implements newsrelay.Publisher.
var _ newsrelay.Publisher = (*LoggingPublisher)(nil)

// LoggingPublisher wraps a Publisher with logging.
type LoggingPublisher struct {
	next   newsrelay.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next newsrelay.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// CreatePost delegates to the wrapped publisher and logs the created post.
func (p *LoggingPublisher) CreatePost(ctx context.Context, post *newsrelay.Post) (published *newsrelay.PublishedPost, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"title", post.Title,
			"status", post.Status,
			"bytes", len(post.Content),
			"duration", time.Since(begin),
		}
		if published != nil {
			attrs = append(attrs, "id", published.ID, "link", published.Link)
		}
		attrs = append(attrs, "err", err)
		p.logger.Info("create post", attrs...)
	}(time.Now())
	return p.next.CreatePost(ctx, post)
}
