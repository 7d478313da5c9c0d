package crawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/newsrelay"
)

// Relay crawls a headline page, publishes every extracted article and
// records the result of each one.
//
// Articles are published as they are extracted, inside the crawler's
// progress callback, so publishing is paced by the crawler's delays.
type Relay struct {
	Crawler   *Crawler
	Publisher newsrelay.Publisher

	// RunLogs receive the finished run. All are attempted even if one fails.
	RunLogs []newsrelay.RunLog

	// History, if set, suppresses republishing of known URLs.
	History newsrelay.History

	// Status defaults to newsrelay.StatusPublish.
	Status newsrelay.PostStatus

	// AttributionLabel defaults to newsrelay.DefaultAttributionLabel.
	AttributionLabel string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run executes one relay run against pageURL. A headline page failure is
// returned before anything is published or logged. Otherwise the run is
// handed to every RunLog, including when ctx is canceled part way through,
// and the returned error joins the crawl and log errors.
func (r *Relay) Run(ctx context.Context, pageURL string, maxArticles int, progress ProgressFunc) (*newsrelay.Run, error) {
	run := &newsrelay.Run{
		HeadlineURL: pageURL,
		StartedAt:   r.now(),
	}

	// Keyed by position so concurrent crawls still log in headline order.
	records := make(map[int]*newsrelay.Record)
	handle := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
		if event.Outcome == nil {
			return
		}
		if record := r.relay(ctx, event, progress); record != nil {
			records[event.Outcome.Position] = record
		}
	}

	outcomes, err := r.Crawler.Crawl(ctx, pageURL, maxArticles, handle)
	if err != nil && outcomes == nil {
		return nil, err
	}
	for _, o := range outcomes {
		if record, ok := records[o.Position]; ok {
			run.Records = append(run.Records, record)
		}
	}
	run.FinishedAt = r.now()

	// A canceled run is still logged.
	saveCtx := context.WithoutCancel(ctx)
	errs := []error{err}
	for _, log := range r.RunLogs {
		if logErr := log.SaveRun(saveCtx, run); logErr != nil {
			errs = append(errs, fmt.Errorf("save run: %w", logErr))
		}
	}
	return run, errors.Join(errs...)
}

// relay turns one outcome into a record, publishing it when it succeeded.
// It returns nil for articles skipped because they were already published.
func (r *Relay) relay(ctx context.Context, event ProgressEvent, progress ProgressFunc) *newsrelay.Record {
	o := event.Outcome
	notify := func(typ ProgressType, err error) {
		if progress == nil {
			return
		}
		progress(ProgressEvent{
			Type:      typ,
			Completed: event.Completed,
			Total:     event.Total,
			URL:       o.Headline.URL,
			Error:     err,
			Outcome:   o,
		})
	}

	if !o.Succeeded() {
		return &newsrelay.Record{
			Timestamp: r.now(),
			Status:    newsrelay.RecordFailed,
			Article:   newsrelay.RecordArticle{Title: o.Headline.Title, URL: o.Headline.URL},
			Reason:    o.Reason,
			Error:     o.Message(),
		}
	}

	article := o.Article
	if r.History != nil && r.History.Test(article.URL) {
		notify(ProgressSkipped, nil)
		return nil
	}

	title := article.Title
	if title == "" {
		title = o.Headline.Title
	}
	record := &newsrelay.Record{
		Article:     newsrelay.RecordArticle{Title: title, URL: article.URL, Content: article.Body},
		ContentHash: ComputeHash(article.Body),
	}

	post := &newsrelay.Post{
		Title:   title,
		Content: newsrelay.PostContent(article, r.attributionLabel()),
		Status:  r.status(),
	}
	published, err := r.Publisher.CreatePost(ctx, post)
	record.Timestamp = r.now()
	if err != nil {
		record.Status = newsrelay.RecordFailed
		record.Error = fmt.Sprintf("Failed to create post: %v", err)
		notify(ProgressPublishFailed, err)
		return record
	}

	record.Status = newsrelay.RecordSuccess
	record.PostID = published.ID
	record.PostURL = published.Link
	if r.History != nil {
		r.History.Add(article.URL)
	}
	notify(ProgressPublished, nil)
	return record
}

func (r *Relay) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Relay) status() newsrelay.PostStatus {
	if r.Status == "" {
		return newsrelay.StatusPublish
	}
	return r.Status
}

func (r *Relay) attributionLabel() string {
	if r.AttributionLabel == "" {
		return newsrelay.DefaultAttributionLabel
	}
	return r.AttributionLabel
}
