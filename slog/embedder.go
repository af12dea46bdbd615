package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder and logs each call.
type LoggingEmbedder struct {
	next   helpdesk.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next helpdesk.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// EmbedDocuments delegates to the wrapped embedder.
func (e *LoggingEmbedder) EmbedDocuments(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		attrs := []any{"texts", len(texts), "duration", time.Since(begin)}
		if len(vecs) > 0 {
			attrs = append(attrs, "dimensions", len(vecs[0]))
		}
		if err != nil {
			e.logger.Error("embed documents", append(attrs, "err", err)...)
			return
		}
		e.logger.Info("embed documents", attrs...)
	}(time.Now())
	return e.next.EmbedDocuments(ctx, texts)
}

// EmbedQuery delegates to the wrapped embedder.
func (e *LoggingEmbedder) EmbedQuery(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		attrs := []any{"chars", len(text), "duration", time.Since(begin)}
		if err != nil {
			e.logger.Error("embed query", append(attrs, "err", err)...)
			return
		}
		e.logger.Debug("embed query", attrs...)
	}(time.Now())
	return e.next.EmbedQuery(ctx, text)
}
