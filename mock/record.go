package mock

import (
	"context"

	"github.com/fwojciec/newsrelay"
)

// Compile-time interface verification.
var (
	_ newsrelay.RunLog        = (*RunLog)(nil)
	_ newsrelay.RecordService = (*RecordService)(nil)
)

// RunLog is a mock implementation of newsrelay.RunLog.
type RunLog struct {
	SaveRunFn func(ctx context.Context, run *newsrelay.Run) error
}

func (l *RunLog) SaveRun(ctx context.Context, run *newsrelay.Run) error {
	return l.SaveRunFn(ctx, run)
}

// RecordService is a mock implementation of newsrelay.RecordService.
type RecordService struct {
	FindRecordsFn   func(ctx context.Context, filter newsrelay.RecordFilter) ([]*newsrelay.Record, error)
	PublishedURLsFn func(ctx context.Context) ([]string, error)
}

func (s *RecordService) FindRecords(ctx context.Context, filter newsrelay.RecordFilter) ([]*newsrelay.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) PublishedURLs(ctx context.Context) ([]string, error) {
	return s.PublishedURLsFn(ctx)
}
