package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source and logs each load under the source name.
type LoggingSource struct {
	next   helpdesk.Source
	name   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next helpdesk.Source, name string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, name: name, logger: logger}
}

// Load delegates to the wrapped source and logs the document count.
func (s *LoggingSource) Load(ctx context.Context) (docs []*helpdesk.Document, err error) {
	defer func(begin time.Time) {
		attrs := []any{"source", s.name, "documents", len(docs), "duration", time.Since(begin)}
		if err != nil {
			s.logger.Error("load source", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("load source", attrs...)
	}(time.Now())
	return s.next.Load(ctx)
}
