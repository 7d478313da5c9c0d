package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/newsrelay"
	"github.com/fwojciec/newsrelay/crawl"
	"github.com/fwojciec/newsrelay/htmltomarkdown"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Fetcher   newsrelay.Fetcher
	Headlines newsrelay.HeadlineExtractor
	Articles  newsrelay.ArticleExtractor
	Markdown  *htmltomarkdown.Converter
	Crawler   *crawl.Crawler
	Relay     *crawl.Relay
	Records   newsrelay.RecordService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch, extraction, post and run log write"`

	Run       RunCmd       `cmd:"" help:"Crawl a headline page and publish its articles"`
	Headlines HeadlinesCmd `cmd:"" help:"List the headlines found on a page"`
	Extract   ExtractCmd   `cmd:"" help:"Extract a single article and print its body"`
	History   HistoryCmd   `cmd:"" help:"Show logged records from previous runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL          string        `arg:"" optional:"" default:"https://edition.cnn.com/world" help:"Headline page URL"`
	Max          int           `short:"n" default:"3" help:"Maximum number of articles to process"`
	Status       string        `default:"publish" enum:"draft,publish" help:"Post status (draft, publish)"`
	DryRun       bool          `help:"Extract articles without publishing or logging"`
	Fallback     string        `default:"none" enum:"none,readability,trafilatura" help:"Generic extractor used when no body container matches (none, readability, trafilatura)"`
	Concurrency  int           `short:"c" default:"1" help:"Concurrent article fetches; above 1 the per-host rate limit replaces the fixed delays"`
	RPS          float64       `name:"rps" default:"0.5" help:"Requests per second per host in concurrent mode"`
	FetchDelay   time.Duration `default:"2s" help:"Pause before each article fetch"`
	ArticleDelay time.Duration `default:"3s" help:"Pause after each article"`
	Timeout      time.Duration `default:"10s" help:"Timeout for a single page fetch"`
	Retry        bool          `help:"Retry failed article fetches after 1s, 2s and 4s"`
	Republish    bool          `help:"Publish articles even if their URL was published before"`
	Label        string        `default:"Source" help:"Label of the attribution link appended to each post"`
	LogDir       string        `default:"." env:"NEWSRELAY_LOG_DIR" help:"Directory for JSON run logs"`

	SiteURL        string        `name:"wp-url" env:"NEWSRELAY_WP_URL" help:"WordPress site URL"`
	Username       string        `name:"wp-user" env:"NEWSRELAY_WP_USER" help:"WordPress username"`
	Password       string        `name:"wp-password" env:"NEWSRELAY_WP_PASSWORD" help:"WordPress application password"`
	PublishTimeout time.Duration `default:"30s" help:"Timeout for a single WordPress request"`
	PublishRetries uint64        `default:"2" help:"Retries for WordPress server errors"`
}

// HeadlinesCmd is the "headlines" subcommand.
type HeadlinesCmd struct {
	URL string `arg:"" optional:"" default:"https://edition.cnn.com/world" help:"Headline page URL"`
	Max int    `short:"n" default:"10" help:"Maximum number of headlines"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" help:"Article URL"`
	Markdown bool   `short:"m" help:"Print the article as Markdown"`
	Fallback string `default:"none" enum:"none,readability,trafilatura" help:"Generic extractor used when no body container matches (none, readability, trafilatura)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Status string `help:"Only show records with this status (success, failed)"`
	RunID  string `name:"run" help:"Only show records of this run"`
	URL    string `help:"Only show records for this article URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of records"`
}
