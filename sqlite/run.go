package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsrelay"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ newsrelay.RunLog        = (*RunService)(nil)
	_ newsrelay.RecordService = (*RunService)(nil)
)

// RunService stores runs and their records using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashContent returns the xxHash of content as 16 hex digits, the same
// form the crawler uses.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// SaveRun inserts the run and all of its records in one transaction.
// IDs are generated for the run and each record; content hashes are filled
// in for records that carry content.
func (s *RunService) SaveRun(ctx context.Context, run *newsrelay.Run) error {
	if run.HeadlineURL == "" {
		return newsrelay.Errorf(newsrelay.EINVALID, "run headline URL required")
	}
	for _, rec := range run.Records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	runID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, headline_url, started_at, finished_at)
		VALUES (?, ?, ?, ?)
	`, runID, run.HeadlineURL, formatTime(run.StartedAt), formatTime(run.FinishedAt)); err != nil {
		return err
	}

	ids := make([]string, len(run.Records))
	hashes := make([]string, len(run.Records))
	for i, rec := range run.Records {
		ids[i] = uuid.New().String()
		hashes[i] = rec.ContentHash
		if hashes[i] == "" && rec.Article.Content != "" {
			hashes[i] = hashContent(rec.Article.Content)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (id, run_id, position, timestamp, status, title, url, content,
				content_hash, post_id, post_url, reason, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, ids[i], runID, i, formatTime(rec.Timestamp), string(rec.Status), rec.Article.Title,
			rec.Article.URL, rec.Article.Content, hashes[i], rec.PostID, rec.PostURL,
			string(rec.Reason), rec.Error); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// Only assign identifiers once they are durable.
	run.ID = runID
	for i, rec := range run.Records {
		rec.ID = ids[i]
		rec.RunID = runID
		rec.ContentHash = hashes[i]
	}
	return nil
}

// FindRecords retrieves records matching the filter, newest first.
// Records within one run keep their processing order.
func (s *RunService) FindRecords(ctx context.Context, filter newsrelay.RecordFilter) ([]*newsrelay.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT r.id, r.run_id, r.timestamp, r.status, r.title, r.url, r.content,
		r.content_hash, r.post_id, r.post_url, r.reason, r.error
		FROM records r JOIN runs ON runs.id = r.run_id WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND r.run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Status != nil {
		query.WriteString(" AND r.status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.URL != nil {
		query.WriteString(" AND r.url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY runs.started_at DESC, r.position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*newsrelay.Record
	for rows.Next() {
		var rec newsrelay.Record
		var timestamp, status, reason string

		if err := rows.Scan(&rec.ID, &rec.RunID, &timestamp, &status, &rec.Article.Title,
			&rec.Article.URL, &rec.Article.Content, &rec.ContentHash, &rec.PostID, &rec.PostURL,
			&reason, &rec.Error); err != nil {
			return nil, err
		}

		rec.Status = newsrelay.RecordStatus(status)
		rec.Reason = newsrelay.FailureReason(reason)
		if rec.Timestamp, err = parseTime(timestamp, "timestamp"); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

// PublishedURLs returns the distinct article URLs of successful records.
func (s *RunService) PublishedURLs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT url FROM records WHERE status = ? ORDER BY url
	`, string(newsrelay.RecordSuccess))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
