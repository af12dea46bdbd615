package mock

import (
	"context"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of helpdesk.Embedder.
type Embedder struct {
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQueryFn     func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

var _ helpdesk.Generator = (*Generator)(nil)

// Generator is a mock implementation of helpdesk.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error)
}

func (g *Generator) Generate(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
	return g.GenerateFn(ctx, question, results)
}

var _ helpdesk.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of helpdesk.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}
