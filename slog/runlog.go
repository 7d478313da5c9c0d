package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsrelay"
)

// Ensure LoggingRunLog implements newsrelay.RunLog.
var _ newsrelay.RunLog = (*LoggingRunLog)(nil)

// LoggingRunLog wraps a RunLog with logging. Name identifies the
// destination in log output.
type LoggingRunLog struct {
	next   newsrelay.RunLog
	name   string
	logger *slog.Logger
}

// NewLoggingRunLog creates a new LoggingRunLog.
func NewLoggingRunLog(next newsrelay.RunLog, name string, logger *slog.Logger) *LoggingRunLog {
	return &LoggingRunLog{next: next, name: name, logger: logger}
}

// SaveRun delegates to the wrapped log and records the run totals.
func (l *LoggingRunLog) SaveRun(ctx context.Context, run *newsrelay.Run) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("save run",
			"log", l.name,
			"published", run.Published(),
			"failed", run.Failed(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.SaveRun(ctx, run)
}
