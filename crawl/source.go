// Package crawl loads a fixed list of web pages as helpdesk documents.
// It coordinates fetching, cleanup, extraction and conversion of each page.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/helpdesk"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once.
const DefaultConcurrency = 4

var _ helpdesk.Source = (*PageSource)(nil)

// PageSource implements helpdesk.Source over a fixed list of page URLs.
type PageSource struct {
	URLs []string

	Fetcher   helpdesk.Fetcher
	Cleaner   helpdesk.Cleaner
	Extractor helpdesk.Extractor
	Converter helpdesk.Converter

	// Fallback converts the whole cleaned page when extraction finds no
	// main content.
	Fallback helpdesk.Converter
	// Title reads the page title when extraction finds none.
	Title func(html string) string

	RateLimiter helpdesk.DomainLimiter
	Concurrency int

	// SkipFailures logs and skips pages that cannot be fetched instead of
	// failing the whole load.
	SkipFailures bool

	Logger *slog.Logger
}

// Load fetches every page and returns one document per page with text, in
// URL order. Pages without any text are skipped.
func (s *PageSource) Load(ctx context.Context) ([]*helpdesk.Document, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	docs := make([]*helpdesk.Document, len(s.URLs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range s.URLs {
		g.Go(func() error {
			doc, err := s.LoadPage(ctx, u)
			if err != nil {
				if s.SkipFailures && ctx.Err() == nil {
					s.logger().Warn("skipping page", "url", u, "err", err)
					return nil
				}
				return fmt.Errorf("loading %s: %w", u, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := docs[:0]
	for _, doc := range docs {
		if doc != nil {
			out = append(out, doc)
		}
	}
	return out, nil
}

// LoadPage fetches and normalizes a single page. It returns a nil document
// and no error when the page has no text.
func (s *PageSource) LoadPage(ctx context.Context, url string) (*helpdesk.Document, error) {
	if err := waitURL(ctx, s.RateLimiter, url); err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	cleaned := html
	if s.Cleaner != nil {
		if cleaned, err = s.Cleaner.Clean(html); err != nil {
			return nil, err
		}
	}

	var title, text string
	result, err := s.Extractor.Extract(cleaned)
	if err != nil {
		s.logger().Debug("extraction failed", "url", url, "err", err)
	} else {
		title = result.Title
		if strings.TrimSpace(result.ContentHTML) != "" {
			if text, err = s.Converter.Convert(result.ContentHTML); err != nil {
				return nil, err
			}
		}
	}

	if strings.TrimSpace(text) == "" && s.Fallback != nil {
		if text, err = s.Fallback.Convert(cleaned); err != nil {
			return nil, err
		}
	}

	if title == "" && s.Title != nil {
		title = s.Title(cleaned)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger().Warn("page has no text", "url", url)
		return nil, nil
	}

	return &helpdesk.Document{
		SourceURL: url,
		Title:     strings.TrimSpace(title),
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (s *PageSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
