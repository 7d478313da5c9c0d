package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsrelay"
)

// Ensure the extractor decorators implement their interfaces.
var (
	_ newsrelay.HeadlineExtractor = (*LoggingHeadlineExtractor)(nil)
	_ newsrelay.ArticleExtractor  = (*LoggingArticleExtractor)(nil)
)

// LoggingHeadlineExtractor wraps a HeadlineExtractor with logging.
type LoggingHeadlineExtractor struct {
	next   newsrelay.HeadlineExtractor
	logger *slog.Logger
}

// NewLoggingHeadlineExtractor creates a new LoggingHeadlineExtractor.
func NewLoggingHeadlineExtractor(next newsrelay.HeadlineExtractor, logger *slog.Logger) *LoggingHeadlineExtractor {
	return &LoggingHeadlineExtractor{next: next, logger: logger}
}

// ExtractHeadlines delegates to the wrapped extractor and logs the result count.
func (e *LoggingHeadlineExtractor) ExtractHeadlines(html, baseURL string, maxCount int) (headlines []newsrelay.Headline, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract headlines",
			"url", baseURL,
			"max", maxCount,
			"count", len(headlines),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractHeadlines(html, baseURL, maxCount)
}

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   newsrelay.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next newsrelay.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// ExtractArticle delegates to the wrapped extractor and logs what was found.
func (e *LoggingArticleExtractor) ExtractArticle(html, url string) (article *newsrelay.Article, err error) {
	defer func(begin time.Time) {
		var containers, bytes int
		if article != nil {
			containers = article.Containers
			bytes = len(article.Body)
		}
		e.logger.Info("extract article",
			"url", url,
			"containers", containers,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractArticle(html, url)
}
