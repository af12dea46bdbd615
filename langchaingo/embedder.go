package langchaingo

import (
	"context"

	"github.com/fwojciec/helpdesk"
	"github.com/tmc/langchaingo/embeddings"
)

var _ helpdesk.Embedder = (*Embedder)(nil)

// Embedder implements helpdesk.Embedder using a langchaingo embedder.
type Embedder struct {
	embedder embeddings.Embedder
}

// NewEmbedder wraps an embedding client, such as an *openai.LLM.
func NewEmbedder(client embeddings.EmbedderClient) (*Embedder, error) {
	e, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}
	return &Embedder{embedder: e}, nil
}

// EmbedDocuments embeds texts for storage.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, helpdesk.Errorf(helpdesk.EINTERNAL, "embedder returned %d embeddings for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}

// EmbedQuery embeds a single question.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "query text required")
	}
	return e.embedder.EmbedQuery(ctx, text)
}
