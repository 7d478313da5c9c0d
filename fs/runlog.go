// Package fs provides file-based run logs.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/newsrelay"
)

// Timestamp layouts used in log file names and headers.
const (
	FileTimestampLayout = "20060102_150405"
	DateLayout          = "20060102"
)

// Ensure RunLog implements newsrelay.RunLog at compile time.
var _ newsrelay.RunLog = (*RunLog)(nil)

// RunLog writes each run as two JSON files in a directory: one for
// published articles and one for failures. A file is only written when it
// has at least one entry.
type RunLog struct {
	dir string
}

// NewRunLog creates a RunLog writing to dir. The directory is created on
// first save.
func NewRunLog(dir string) *RunLog {
	return &RunLog{dir: dir}
}

// publishedFile is the layout of published_articles_<ts>.json.
type publishedFile struct {
	TotalPublished int      `json:"total_published"`
	PublishedDate  string   `json:"published_date"`
	Articles       []*entry `json:"articles"`
}

// failedFile is the layout of failed_articles_<ts>.json.
type failedFile struct {
	TotalFailed int      `json:"total_failed"`
	Date        string   `json:"date"`
	Articles    []*entry `json:"articles"`
}

type entry struct {
	Timestamp time.Time               `json:"timestamp"`
	Article   newsrelay.RecordArticle `json:"article"`
	PostID    int64                   `json:"wordpress_post_id,omitempty"`
	PostURL   string                  `json:"wordpress_post_url,omitempty"`
	Reason    newsrelay.FailureReason `json:"reason,omitempty"`
	Error     string                  `json:"error,omitempty"`
	Status    newsrelay.RecordStatus  `json:"status"`
}

// SaveRun writes the run's records. File names carry the run's finish time.
func (l *RunLog) SaveRun(_ context.Context, run *newsrelay.Run) error {
	var published, failed []*entry
	for _, rec := range run.Records {
		if err := rec.Validate(); err != nil {
			return err
		}
		e := &entry{
			Timestamp: rec.Timestamp,
			Article:   rec.Article,
			Status:    rec.Status,
		}
		if rec.Status == newsrelay.RecordSuccess {
			e.PostID = rec.PostID
			e.PostURL = rec.PostURL
			published = append(published, e)
			continue
		}
		e.Reason = rec.Reason
		e.Error = rec.Error
		failed = append(failed, e)
	}

	if len(published) == 0 && len(failed) == 0 {
		return nil
	}

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return err
	}

	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	date := run.StartedAt.Format(DateLayout)
	if run.StartedAt.IsZero() {
		date = finished.Format(DateLayout)
	}

	if len(published) > 0 {
		if err := writeJSON(PublishedPath(l.dir, finished), publishedFile{
			TotalPublished: len(published),
			PublishedDate:  date,
			Articles:       published,
		}); err != nil {
			return err
		}
	}
	if len(failed) > 0 {
		if err := writeJSON(FailedPath(l.dir, finished), failedFile{
			TotalFailed: len(failed),
			Date:        date,
			Articles:    failed,
		}); err != nil {
			return err
		}
	}
	return nil
}

// PublishedPath returns the published log path for a run finished at t.
func PublishedPath(dir string, t time.Time) string {
	return filepath.Join(dir, "published_articles_"+t.Format(FileTimestampLayout)+".json")
}

// FailedPath returns the failure log path for a run finished at t.
func FailedPath(dir string, t time.Time) string {
	return filepath.Join(dir, "failed_articles_"+t.Format(FileTimestampLayout)+".json")
}

// writeJSON writes v to a temporary file and renames it into place so a
// crash never leaves a truncated log behind.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
