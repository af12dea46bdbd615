package sqlite

import (
	"context"
	"fmt"
	"sort"

	"github.com/fwojciec/helpdesk"
	"github.com/google/uuid"
)

var _ helpdesk.ChunkService = (*ChunkService)(nil)

// ChunkService implements helpdesk.ChunkService using SQLite. Embeddings are
// stored as blobs and scored by cosine similarity in Go.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks stores chunks in a single transaction, assigning IDs.
// All chunks must share the same embedding dimensions as the stored ones.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*helpdesk.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	dims, err := s.dimensions(ctx)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
		if dims == 0 {
			dims = len(c.Embedding)
		}
		if len(c.Embedding) != dims {
			return helpdesk.Errorf(helpdesk.EINVALID, "chunk embedding has %d dimensions, want %d", len(c.Embedding), dims)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, dimensions, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		c.ID = uuid.New().String()
		if _, err := stmt.ExecContext(ctx, c.ID, c.DocumentID, c.Content, c.Position,
			len(c.Embedding), encodeEmbedding(c.Embedding)); err != nil {
			return fmt.Errorf("inserting chunk %d of document %s: %w", c.Position, c.DocumentID, err)
		}
	}

	return tx.Commit()
}

// CountChunks returns the number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

// Search returns the chunks most similar to embedding, best first.
func (s *ChunkService) Search(ctx context.Context, embedding []float32, opts helpdesk.SearchOptions) ([]helpdesk.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "query embedding required")
	}
	if opts.Limit < 0 {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "search limit must not be negative")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.position, c.embedding, d.source_url, d.title
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		ORDER BY d.position ASC, c.position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []helpdesk.SearchResult
	for rows.Next() {
		var c helpdesk.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.Position, &blob, &c.SourceURL, &c.Title); err != nil {
			return nil, err
		}
		c.Embedding, err = decodeEmbedding(blob)
		if err != nil {
			return nil, err
		}
		if len(c.Embedding) != len(embedding) {
			return nil, helpdesk.Errorf(helpdesk.EINVALID, "query embedding has %d dimensions, index has %d", len(embedding), len(c.Embedding))
		}

		score := cosineSimilarity(embedding, c.Embedding)
		if opts.MinScore != nil && score < *opts.MinScore {
			continue
		}
		results = append(results, helpdesk.SearchResult{Chunk: &c, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

func (s *ChunkService) dimensions(ctx context.Context) (int, error) {
	var dims int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(dimensions), 0) FROM chunks").Scan(&dims)
	return dims, err
}
