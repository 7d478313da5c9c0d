package mock

import (
	"context"

	"github.com/fwojciec/newsrelay"
)

var _ newsrelay.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of newsrelay.Publisher.
type Publisher struct {
	CreatePostFn func(ctx context.Context, post *newsrelay.Post) (*newsrelay.PublishedPost, error)
}

func (p *Publisher) CreatePost(ctx context.Context, post *newsrelay.Post) (*newsrelay.PublishedPost, error) {
	return p.CreatePostFn(ctx, post)
}
