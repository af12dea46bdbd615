package helpdesk

import (
	"context"
)

// Chunk represents a section of a document optimized for embedding and retrieval.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Content    string    `json:"content"`
	Position   int       `json:"position"`
	Embedding  []float32 `json:"embedding,omitempty"`

	// Denormalized from the document for citation.
	SourceURL string `json:"sourceUrl,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "chunk document ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk embedding required")
	}
	return nil
}

// ChunkService stores embedded chunks and searches them by similarity.
type ChunkService interface {
	// CreateChunks creates multiple chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// Search returns the chunks most similar to the query embedding,
	// ordered by descending score.
	Search(ctx context.Context, embedding []float32, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Maximum number of results to return. Zero means no limit.
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (-1 to 1). Nil means no minimum.
	MinScore *float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// Splitter splits document text into chunks sized for embedding.
type Splitter interface {
	Split(text string) ([]string, error)
}
