package mock

import (
	"context"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of helpdesk.ChunkService.
type ChunkService struct {
	CreateChunksFn func(ctx context.Context, chunks []*helpdesk.Chunk) error
	CountChunksFn  func(ctx context.Context) (int, error)
	SearchFn       func(ctx context.Context, embedding []float32, opts helpdesk.SearchOptions) ([]helpdesk.SearchResult, error)
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*helpdesk.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	return s.CountChunksFn(ctx)
}

func (s *ChunkService) Search(ctx context.Context, embedding []float32, opts helpdesk.SearchOptions) ([]helpdesk.SearchResult, error) {
	return s.SearchFn(ctx, embedding, opts)
}

var _ helpdesk.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of helpdesk.Splitter.
type Splitter struct {
	SplitFn func(text string) ([]string, error)
}

func (s *Splitter) Split(text string) ([]string, error) {
	return s.SplitFn(text)
}
