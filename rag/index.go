package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/helpdesk"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 2

var (
	_ helpdesk.Asker          = (*Index)(nil)
	_ helpdesk.DocumentFinder = (*Index)(nil)
)

// Index stores embedded document chunks and answers questions from the most
// similar ones.
type Index struct {
	Documents helpdesk.DocumentService
	Chunks    helpdesk.ChunkService
	Splitter  helpdesk.Splitter
	Embedder  helpdesk.Embedder
	Generator helpdesk.Generator

	// TopK is the number of chunks passed to the generator.
	TopK int
	// MinScore drops chunks less similar than this. Nil keeps the top
	// chunks whatever their score.
	MinScore *float32

	// MaxContextTokens limits the retrieved context when TokenCounter is
	// set. Zero means unlimited.
	MaxContextTokens int
	TokenCounter     helpdesk.TokenCounter
}

// Add stores the documents, splits them into chunks and embeds the chunks in
// a single batch.
func (ix *Index) Add(ctx context.Context, docs []*helpdesk.Document) error {
	if len(docs) == 0 {
		return helpdesk.Errorf(helpdesk.EINVALID, "no documents to index")
	}
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	var chunks []*helpdesk.Chunk
	var texts []string
	for _, doc := range docs {
		if err := ix.Documents.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("storing %s: %w", doc.SourceURL, err)
		}
		parts, err := ix.Splitter.Split(doc.Text)
		if err != nil {
			return fmt.Errorf("splitting %s: %w", doc.SourceURL, err)
		}
		for i, part := range parts {
			chunks = append(chunks, &helpdesk.Chunk{
				DocumentID: doc.ID,
				Content:    part,
				Position:   i,
				SourceURL:  doc.SourceURL,
				Title:      doc.Title,
			})
			texts = append(texts, part)
		}
	}
	if len(chunks) == 0 {
		return helpdesk.Errorf(helpdesk.EINVALID, "documents contain no text to index")
	}

	vecs, err := ix.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vecs) != len(chunks) {
		return helpdesk.Errorf(helpdesk.EINTERNAL, "got %d embeddings for %d chunks", len(vecs), len(chunks))
	}
	for i, c := range chunks {
		c.Embedding = vecs[i]
	}

	return ix.Chunks.CreateChunks(ctx, chunks)
}

// Ask answers the question from the TopK most similar chunks.
func (ix *Index) Ask(ctx context.Context, question string) (*helpdesk.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "question required")
	}

	vec, err := ix.Embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	topK := ix.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	results, err := ix.Chunks.Search(ctx, vec, helpdesk.SearchOptions{Limit: topK, MinScore: ix.MinScore})
	if err != nil {
		return nil, err
	}

	results, err = ix.fitContext(ctx, results)
	if err != nil {
		return nil, err
	}

	text, err := ix.Generator.Generate(ctx, question, results)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &helpdesk.Answer{
		Question: question,
		Text:     strings.TrimSpace(text),
		Sources:  results,
	}, nil
}

// fitContext drops trailing results once their combined content exceeds
// MaxContextTokens. The best result is always kept.
func (ix *Index) fitContext(ctx context.Context, results []helpdesk.SearchResult) ([]helpdesk.SearchResult, error) {
	if ix.MaxContextTokens <= 0 || ix.TokenCounter == nil || len(results) <= 1 {
		return results, nil
	}

	total := 0
	for i, r := range results {
		n, err := ix.TokenCounter.CountTokens(ctx, r.Chunk.Content)
		if err != nil {
			return nil, fmt.Errorf("counting tokens: %w", err)
		}
		total += n
		if i > 0 && total > ix.MaxContextTokens {
			return results[:i], nil
		}
	}
	return results, nil
}

// FindDocumentByID returns an indexed document.
func (ix *Index) FindDocumentByID(ctx context.Context, id string) (*helpdesk.Document, error) {
	return ix.Documents.FindDocumentByID(ctx, id)
}

// FindDocuments lists indexed documents in load order.
func (ix *Index) FindDocuments(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
	return ix.Documents.FindDocuments(ctx, filter)
}
