package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsrelay"
	"github.com/fwojciec/newsrelay/bloom"
	"github.com/fwojciec/newsrelay/crawl"
	nrfs "github.com/fwojciec/newsrelay/fs"
	"github.com/fwojciec/newsrelay/goquery"
	"github.com/fwojciec/newsrelay/htmltomarkdown"
	nrhttp "github.com/fwojciec/newsrelay/http"
	"github.com/fwojciec/newsrelay/readability"
	nrslog "github.com/fwojciec/newsrelay/slog"
	"github.com/fwojciec/newsrelay/sqlite"
	"github.com/fwojciec/newsrelay/trafilatura"
	"github.com/fwojciec/newsrelay/wordpress"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. When empty, Run resolves it after loading EnvFile so
	// NEWSRELAY_DB may come from either source.
	DBPath string

	// EnvFile is loaded into the environment before flags are parsed.
	// A missing file is not an error.
	EnvFile string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Fetcher   newsrelay.Fetcher
	Publisher newsrelay.Publisher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Environment must be populated before kong resolves env tags.
	if err := godotenv.Load(m.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "warning: failed to load %s: %v\n", m.EnvFile, err)
	}
	if m.DBPath == "" {
		m.DBPath = defaultDBPath()
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsrelay"),
		kong.Description("Relay news articles from a headline page to WordPress."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsrelay --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	// Command() includes positional placeholders, e.g. "extract <url>".
	cmd = strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	timeout := nrhttp.DefaultFetchTimeout
	if cmd == "run" {
		timeout = cli.Run.Timeout
	}
	var fetcher newsrelay.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = nrhttp.NewFetcher(nrhttp.WithTimeout(timeout))
	}
	defer fetcher.Close()

	var headlines newsrelay.HeadlineExtractor = goquery.NewHeadlineExtractor()
	var articles newsrelay.ArticleExtractor = goquery.NewArticleExtractor()

	switch cmd {
	case "run":
		if articles, err = fallbackExtractor(cli.Run.Fallback); err != nil {
			return err
		}
	case "extract":
		if articles, err = fallbackExtractor(cli.Extract.Fallback); err != nil {
			return err
		}
	}

	// Verbose mode logs every call made by the services.
	if cli.Verbose {
		fetcher = nrslog.NewLoggingFetcher(fetcher, logger)
		headlines = nrslog.NewLoggingHeadlineExtractor(headlines, logger)
		articles = nrslog.NewLoggingArticleExtractor(articles, logger)
	}

	deps.Fetcher = fetcher
	deps.Headlines = headlines
	deps.Articles = articles
	deps.Markdown = htmltomarkdown.NewConverter()

	needDB := cmd == "history" || (cmd == "run" && !cli.Run.DryRun)
	if needDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NEWSRELAY_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Records = sqlite.NewRunService(m.DB)
	}

	if cmd == "run" {
		crawler := &crawl.Crawler{
			Fetcher:      fetcher,
			Headlines:    headlines,
			Articles:     articles,
			Concurrency:  cli.Run.Concurrency,
			FetchDelay:   cli.Run.FetchDelay,
			ArticleDelay: cli.Run.ArticleDelay,
		}
		if cli.Run.Concurrency > 1 {
			crawler.RateLimiter = crawl.NewDomainLimiter(cli.Run.RPS)
		}
		if cli.Run.Retry {
			crawler.RetryDelays = crawl.DefaultRetryDelays()
		}
		if cli.Verbose {
			crawler.Logger = logger
		}
		deps.Crawler = crawler

		if !cli.Run.DryRun {
			relay, err := m.newRelay(ctx, cli, crawler, logger)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Set NEWSRELAY_WP_URL, NEWSRELAY_WP_USER and NEWSRELAY_WP_PASSWORD or use --dry-run")
				return err
			}
			deps.Relay = relay
		}
	}

	return kongCtx.Run(deps)
}

// newRelay wires the publisher, run logs and history for a publishing run.
func (m *Main) newRelay(ctx context.Context, cli *CLI, crawler *crawl.Crawler, logger *slog.Logger) (*crawl.Relay, error) {
	c := &cli.Run

	publisher := m.Publisher
	if publisher == nil {
		if c.SiteURL == "" || c.Username == "" || c.Password == "" {
			return nil, fmt.Errorf("WordPress site URL, username and application password are required")
		}
		publisher = wordpress.NewPublisher(c.SiteURL, c.Username, c.Password,
			wordpress.WithTimeout(c.PublishTimeout),
			wordpress.WithMaxRetries(c.PublishRetries),
		)
	}

	records := sqlite.NewRunService(m.DB)
	urls, err := records.PublishedURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load publish history: %w", err)
	}

	var jsonLog newsrelay.RunLog = nrfs.NewRunLog(c.LogDir)
	var dbLog newsrelay.RunLog = records
	if cli.Verbose {
		publisher = nrslog.NewLoggingPublisher(publisher, logger)
		jsonLog = nrslog.NewLoggingRunLog(jsonLog, "json", logger)
		dbLog = nrslog.NewLoggingRunLog(dbLog, "sqlite", logger)
	}

	relay := &crawl.Relay{
		Crawler:          crawler,
		Publisher:        publisher,
		RunLogs:          []newsrelay.RunLog{jsonLog, dbLog},
		Status:           newsrelay.PostStatus(c.Status),
		AttributionLabel: c.Label,
	}
	if !c.Republish {
		relay.History = bloom.NewHistory(urls)
	}
	return relay, nil
}

// fallbackExtractor returns the article extractor for the named fallback.
func fallbackExtractor(name string) (newsrelay.ArticleExtractor, error) {
	primary := goquery.NewArticleExtractor()
	switch name {
	case "", "none":
		return primary, nil
	case "readability":
		return goquery.NewFallbackArticleExtractor(primary, readability.NewExtractor()), nil
	case "trafilatura":
		return goquery.NewFallbackArticleExtractor(primary, trafilatura.NewExtractor()), nil
	default:
		return nil, newsrelay.Errorf(newsrelay.EINVALID, "unknown fallback extractor %q", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSRELAY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsrelay.db"
	}
	dir := filepath.Join(home, ".newsrelay")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsrelay.db")
}
