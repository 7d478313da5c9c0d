package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/newsrelay"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := newsrelay.RecordFilter{Limit: c.Limit}
	if c.Status != "" {
		status := newsrelay.RecordStatus(c.Status)
		if status != newsrelay.RecordSuccess && status != newsrelay.RecordFailed {
			err := newsrelay.Errorf(newsrelay.EINVALID, "status must be success or failed, got %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'newsrelay run' to relay articles.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s\n", r.Timestamp.Local().Format(time.DateTime), r.Status, r.Article.Title)
		fmt.Fprintf(deps.Stdout, "    %s\n", r.Article.URL)
		if r.Status == newsrelay.RecordSuccess {
			fmt.Fprintf(deps.Stdout, "    -> %s\n", r.PostURL)
		} else if r.Reason != "" {
			fmt.Fprintf(deps.Stdout, "    %s: %s\n", r.Reason, r.Error)
		} else {
			fmt.Fprintf(deps.Stdout, "    %s\n", r.Error)
		}
	}
	return nil
}
