package newsrelay

import (
	"context"
	"time"
)

// RecordStatus is the final state of an article in a run.
type RecordStatus string

// Record statuses.
const (
	RecordSuccess RecordStatus = "success"
	RecordFailed  RecordStatus = "failed"
)

// RecordArticle is the article snapshot kept in an audit record.
type RecordArticle struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
}

// Record is the audit entry for a single article.
type Record struct {
	ID          string        `json:"id,omitempty"`
	RunID       string        `json:"runId,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Status      RecordStatus  `json:"status"`
	Article     RecordArticle `json:"article"`
	PostID      int64         `json:"postId,omitempty"`
	PostURL     string        `json:"postUrl,omitempty"`
	Reason      FailureReason `json:"reason,omitempty"`
	Error       string        `json:"error,omitempty"`
	ContentHash string        `json:"contentHash,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Article.URL == "" {
		return Errorf(EINVALID, "record article URL required")
	}
	switch r.Status {
	case RecordSuccess, RecordFailed:
	default:
		return Errorf(EINVALID, "invalid record status %q", r.Status)
	}
	return nil
}

// Run groups the records produced by one pass over a headline page.
type Run struct {
	ID          string    `json:"id,omitempty"`
	HeadlineURL string    `json:"headlineUrl"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	Records     []*Record `json:"records"`
}

// Published returns the number of successful records.
func (r *Run) Published() int {
	return r.count(RecordSuccess)
}

// Failed returns the number of failed records.
func (r *Run) Failed() int {
	return r.count(RecordFailed)
}

func (r *Run) count(status RecordStatus) int {
	var n int
	for _, rec := range r.Records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// RunLog persists the records of a finished run.
type RunLog interface {
	SaveRun(ctx context.Context, run *Run) error
}

// RecordService queries persisted audit records.
type RecordService interface {
	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// PublishedURLs returns the article URLs of every successful record.
	PublishedURLs(ctx context.Context) ([]string, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	RunID  *string       `json:"runId"`
	Status *RecordStatus `json:"status"`
	URL    *string       `json:"url"`

	// Restrict to a subset of results.
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
