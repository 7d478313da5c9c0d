package main

import (
	"fmt"

	"github.com/fwojciec/newsrelay"
)

// Run executes the headlines command.
func (c *HeadlinesCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	headlines, err := deps.Headlines.ExtractHeadlines(html, c.URL, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	if len(headlines) == 0 {
		fmt.Fprintln(deps.Stdout, "No headlines found.")
		return nil
	}

	for i, h := range headlines {
		fmt.Fprintf(deps.Stdout, "%2d. %s\n    %s\n", i+1, h.Title, h.URL)
	}
	return nil
}
