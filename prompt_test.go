package helpdesk_test

import (
	"testing"

	"github.com/fwojciec/helpdesk"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("contains chunk content and source", func(t *testing.T) {
		t.Parallel()

		results := []helpdesk.SearchResult{
			{Chunk: &helpdesk.Chunk{Title: "FAQ", SourceURL: "https://example.com/faq", Content: "Check-in opens at 8am."}},
		}

		prompt := helpdesk.BuildPrompt("When is check-in?", results, "")

		assert.Contains(t, prompt, "<documents>")
		assert.Contains(t, prompt, "<title>FAQ</title>")
		assert.Contains(t, prompt, "<source>https://example.com/faq</source>")
		assert.Contains(t, prompt, "Check-in opens at 8am.")
		assert.Contains(t, prompt, "</documents>")
	})

	t.Run("uses source URL when title is empty", func(t *testing.T) {
		t.Parallel()

		results := []helpdesk.SearchResult{
			{Chunk: &helpdesk.Chunk{SourceURL: "https://example.com/event", Content: "Venue details."}},
		}

		prompt := helpdesk.BuildPrompt("Where?", results, "")

		assert.Contains(t, prompt, "<title>https://example.com/event</title>")
	})

	t.Run("ends with trimmed question", func(t *testing.T) {
		t.Parallel()

		prompt := helpdesk.BuildPrompt("  Is there parking?  ", nil, "")

		assert.Contains(t, prompt, "<documents>\n</documents>")
		assert.Regexp(t, `Question: Is there parking\?$`, prompt)
	})

	t.Run("requests answer language when known", func(t *testing.T) {
		t.Parallel()

		prompt := helpdesk.BuildPrompt("¿Hay estacionamiento?", nil, "Spanish")

		assert.Contains(t, prompt, "Answer in Spanish.")
	})

	t.Run("does not contain system instruction", func(t *testing.T) {
		t.Parallel()

		prompt := helpdesk.BuildPrompt("question", nil, "")

		assert.NotContains(t, prompt, helpdesk.SystemInstruction)
	})
}
