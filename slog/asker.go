package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker and logs each question.
type LoggingAsker struct {
	next   helpdesk.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next helpdesk.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the question, the number of
// cited sources and the duration. Answer text is logged at debug level.
func (a *LoggingAsker) Ask(ctx context.Context, question string) (answer *helpdesk.Answer, err error) {
	defer func(begin time.Time) {
		attrs := []any{"question", question, "duration", time.Since(begin)}
		if err != nil {
			a.logger.Error("ask", append(attrs, "code", helpdesk.ErrorCode(err), "err", err)...)
			return
		}
		a.logger.Info("ask", append(attrs, "sources", len(answer.SourceURLs()))...)
		a.logger.Debug("answer", "text", answer.Text)
	}(time.Now())
	return a.next.Ask(ctx, question)
}
