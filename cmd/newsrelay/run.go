package main

import (
	"fmt"

	"github.com/fwojciec/newsrelay"
	"github.com/fwojciec/newsrelay/crawl"
)

// urlWidth is the display width of article URLs in progress output.
const urlWidth = 70

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	if c.Max < 1 {
		err := newsrelay.Errorf(newsrelay.EINVALID, "max articles must be at least 1")
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		url := crawl.TruncateURL(event.URL, urlWidth)
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d headlines on %s\n", event.Total, c.URL)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] extracted %s (%s)\n",
				event.Completed, event.Total, url, crawl.FormatBytes(len(event.Outcome.Article.Body)))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %s\n",
				event.Completed, event.Total, url, event.Outcome.Message())
		case crawl.ProgressPublished:
			fmt.Fprintf(deps.Stdout, "  published %s\n", url)
		case crawl.ProgressPublishFailed:
			fmt.Fprintf(deps.Stderr, "  publish failed %s: %v\n", url, event.Error)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skipped %s (already published)\n", url)
		}
	}

	// Dry runs stop after extraction.
	if deps.Relay == nil {
		outcomes, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.Max, progress)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
			return err
		}
		var extracted int
		for _, o := range outcomes {
			if o.Succeeded() {
				extracted++
			}
		}
		fmt.Fprintf(deps.Stdout, "Extracted %d of %d articles (dry run)\n", extracted, len(outcomes))
		return nil
	}

	run, err := deps.Relay.Run(deps.Ctx, c.URL, c.Max, progress)
	if run != nil {
		fmt.Fprintf(deps.Stdout, "Published %d, failed %d\n", run.Published(), run.Failed())
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
