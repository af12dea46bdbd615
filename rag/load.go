// Package rag builds the question-answering index from documents and answers
// questions over it.
package rag

import (
	"context"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for source URL deduplication.
const (
	expectedURLs   = 1000
	falsePositives = 0.0001
)

// LoadDocuments loads every source concurrently and returns their documents
// in source order. Documents repeating an earlier source URL or identical
// text are dropped. Positions are assigned in the returned order.
// Any failing source fails the load.
func LoadDocuments(ctx context.Context, sources []helpdesk.Source, logger *slog.Logger) ([]*helpdesk.Document, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	loaded := make([][]*helpdesk.Document, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			docs, err := src.Load(ctx)
			if err != nil {
				return err
			}
			loaded[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seenURLs := bloom.NewFilter(expectedURLs, falsePositives)
	seenText := make(map[uint64]string)

	var out []*helpdesk.Document
	for _, docs := range loaded {
		for _, doc := range docs {
			if doc == nil {
				continue
			}
			if seenURLs.Seen(doc.SourceURL) {
				logger.Debug("skipping duplicate URL", "url", doc.SourceURL)
				continue
			}
			h := xxhash.Sum64String(doc.Text)
			if first, ok := seenText[h]; ok {
				logger.Debug("skipping duplicate text", "url", doc.SourceURL, "duplicate_of", first)
				continue
			}
			seenText[h] = doc.SourceURL
			doc.Position = len(out)
			out = append(out, doc)
		}
	}
	return out, nil
}
