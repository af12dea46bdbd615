package helpdesk

import (
	"fmt"
	"strings"
)

// SystemInstruction is the system prompt shared by every Generator.
const SystemInstruction = "You are a helpful help desk assistant answering questions about an event. " +
	"Answer based only on the documents provided. " +
	"If the answer is not in the documents, say that you could not find it and suggest contacting the organizers. " +
	"Keep answers short and use Markdown lists for multiple items."

// BuildPrompt builds the user prompt containing the retrieved chunks and the
// question. Chunks use their title if available and fall back to the source
// URL. If language is set the model is asked to answer in it.
func BuildPrompt(question string, results []SearchResult, language string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, r := range results {
		if r.Chunk == nil {
			continue
		}
		title := r.Chunk.Title
		if title == "" {
			title = r.Chunk.SourceURL
		}
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", r.Chunk.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Chunk.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	if language != "" {
		fmt.Fprintf(&sb, "Answer in %s.\n", language)
	}
	fmt.Fprintf(&sb, "Question: %s", strings.TrimSpace(question))
	return sb.String()
}
