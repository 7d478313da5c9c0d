// Package wordpress publishes posts through the WordPress REST API.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/newsrelay"
)

// Publisher defaults.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultMaxRetries      = 2
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
)

// postsPath is the posts collection relative to the site URL.
const postsPath = "/wp-json/wp/v2/posts"

// maxResponseSize caps the number of bytes read from a response.
const maxResponseSize = int64(1 << 20)

var _ newsrelay.Publisher = (*Publisher)(nil)

// Publisher creates posts with application-password Basic auth.
//
// Network errors and 5xx responses are retried with exponential backoff.
// Other non-2xx responses fail immediately.
type Publisher struct {
	client   *http.Client
	endpoint string
	username string
	password string

	timeout         time.Duration
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithTimeout sets the timeout for a single request.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// WithMaxRetries sets how many times a failed request is retried.
// Zero disables retries.
func WithMaxRetries(n uint64) Option {
	return func(p *Publisher) {
		p.maxRetries = n
	}
}

// WithRetryInterval sets the initial and maximum backoff intervals.
func WithRetryInterval(initial, maxInterval time.Duration) Option {
	return func(p *Publisher) {
		p.initialInterval = initial
		p.maxInterval = maxInterval
	}
}

// NewPublisher creates a Publisher for the site at siteURL.
func NewPublisher(siteURL, username, password string, opts ...Option) *Publisher {
	p := &Publisher{
		endpoint:        strings.TrimRight(siteURL, "/") + postsPath,
		username:        username,
		password:        password,
		timeout:         DefaultTimeout,
		maxRetries:      DefaultMaxRetries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = &http.Client{
		Timeout: p.timeout,
	}

	return p
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type createResponse struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreatePost publishes post and returns the created post's ID and link.
func (p *Publisher) CreatePost(ctx context.Context, post *newsrelay.Post) (*newsrelay.PublishedPost, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(createRequest{
		Title:   post.Title,
		Content: FormatContent(post.Content),
		Status:  string(post.Status),
	})
	if err != nil {
		return nil, newsrelay.WrapError(newsrelay.EINTERNAL, err, "encode post")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialInterval
	b.MaxInterval = p.maxInterval
	bo := backoff.WithContext(backoff.WithMaxRetries(b, p.maxRetries), ctx)

	var published *newsrelay.PublishedPost
	op := func() error {
		var err error
		published, err = p.create(ctx, body)
		return err
	}

	// Retry unwraps permanent errors before returning them.
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return published, nil
}

// create performs one request. Errors that must not be retried are
// wrapped with backoff.Permanent.
func (p *Publisher) create(ctx context.Context, body []byte) (*newsrelay.PublishedPost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(newsrelay.WrapError(newsrelay.EINVALID, err, "invalid request for %s", p.endpoint))
	}
	req.SetBasicAuth(p.username, p.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, newsrelay.WrapError(newsrelay.EPUBLISH, err, "post to %s", p.endpoint)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, newsrelay.WrapError(newsrelay.EPUBLISH, err, "read response from %s", p.endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := newsrelay.Errorf(newsrelay.EPUBLISH, "HTTP %d from %s%s", resp.StatusCode, p.endpoint, detail(data))
		if resp.StatusCode >= 500 {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var created createResponse
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, backoff.Permanent(newsrelay.WrapError(newsrelay.EPUBLISH, err, "decode response from %s", p.endpoint))
	}
	return &newsrelay.PublishedPost{ID: created.ID, Link: created.Link}, nil
}

// detail extracts the error message WordPress puts in failure bodies.
func detail(data []byte) string {
	var e errorResponse
	if err := json.Unmarshal(data, &e); err != nil || e.Message == "" {
		return ""
	}
	if e.Code != "" {
		return fmt.Sprintf(": %s (%s)", e.Message, e.Code)
	}
	return ": " + e.Message
}

// FormatContent returns content unchanged when it is markup. Plain text is
// wrapped in a div with line breaks preserved.
func FormatContent(content string) string {
	if strings.HasPrefix(strings.TrimLeft(content, " \t\r\n"), "<") {
		return content
	}
	return "<div>" + strings.ReplaceAll(content, "\n", "<br>") + "</div>"
}
