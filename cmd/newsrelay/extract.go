package main

import (
	"fmt"

	"github.com/fwojciec/newsrelay"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	article, err := deps.Articles.ExtractArticle(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	if !article.HasBody() {
		err := newsrelay.Errorf(newsrelay.ENOTFOUND, "no article content found at %s", c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		md, err := deps.Markdown.ConvertArticle(article)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsrelay.ErrorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, md)
		return nil
	}

	if article.Title != "" {
		fmt.Fprintln(deps.Stdout, article.Title)
		fmt.Fprintln(deps.Stdout)
	}
	fmt.Fprintln(deps.Stdout, article.Body)
	return nil
}
