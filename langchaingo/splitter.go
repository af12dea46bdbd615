package langchaingo

import (
	"fmt"

	"github.com/fwojciec/helpdesk"
	"github.com/tmc/langchaingo/textsplitter"
)

// Default chunking parameters, in characters.
const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 20
)

var _ helpdesk.Splitter = (*Splitter)(nil)

// Splitter implements helpdesk.Splitter with a recursive character splitter
// that prefers paragraph, then line, then word boundaries.
type Splitter struct {
	splitter textsplitter.RecursiveCharacter
}

// NewSplitter creates a new Splitter. A non-positive chunk size or a negative
// overlap selects the default.
func NewSplitter(chunkSize, chunkOverlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if chunkOverlap >= chunkSize {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "chunk overlap %d must be smaller than chunk size %d", chunkOverlap, chunkSize)
	}
	return &Splitter{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}, nil
}

// Split splits text into chunks. Blank text yields no chunks.
func (s *Splitter) Split(text string) ([]string, error) {
	chunks, err := s.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("splitting text: %w", err)
	}
	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}
