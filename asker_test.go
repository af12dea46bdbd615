package helpdesk_test

import (
	"testing"

	"github.com/fwojciec/helpdesk"
	"github.com/stretchr/testify/assert"
)

func TestAnswer_SourceURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns URLs in rank order", func(t *testing.T) {
		t.Parallel()

		answer := &helpdesk.Answer{
			Sources: []helpdesk.SearchResult{
				{Chunk: &helpdesk.Chunk{SourceURL: "https://example.com/b"}, Score: 0.9},
				{Chunk: &helpdesk.Chunk{SourceURL: "https://example.com/a"}, Score: 0.8},
			},
		}

		assert.Equal(t, []string{"https://example.com/b", "https://example.com/a"}, answer.SourceURLs())
	})

	t.Run("removes duplicates keeping first occurrence", func(t *testing.T) {
		t.Parallel()

		answer := &helpdesk.Answer{
			Sources: []helpdesk.SearchResult{
				{Chunk: &helpdesk.Chunk{SourceURL: "https://example.com/faq"}},
				{Chunk: &helpdesk.Chunk{SourceURL: "https://example.com/event"}},
				{Chunk: &helpdesk.Chunk{SourceURL: "https://example.com/faq"}},
			},
		}

		assert.Equal(t, []string{"https://example.com/faq", "https://example.com/event"}, answer.SourceURLs())
	})

	t.Run("reports missing source as unknown", func(t *testing.T) {
		t.Parallel()

		answer := &helpdesk.Answer{
			Sources: []helpdesk.SearchResult{
				{Chunk: &helpdesk.Chunk{}},
				{Chunk: nil},
			},
		}

		assert.Equal(t, []string{helpdesk.UnknownSource}, answer.SourceURLs())
	})

	t.Run("nil answer has no sources", func(t *testing.T) {
		t.Parallel()

		var answer *helpdesk.Answer

		assert.Empty(t, answer.SourceURLs())
	})
}
