package helpdesk

import "context"

// UnknownSource is shown in place of a cited chunk that carries no source URL.
const UnknownSource = "Unknown"

// Answer is the response to a question along with the chunks it was
// synthesized from.
type Answer struct {
	Question string         `json:"question"`
	Text     string         `json:"text"`
	Sources  []SearchResult `json:"sources"`
}

// SourceURLs returns the cited source URLs in rank order without duplicates.
// Chunks with no source URL are reported as UnknownSource.
func (a *Answer) SourceURLs() []string {
	if a == nil || len(a.Sources) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(a.Sources))
	urls := make([]string, 0, len(a.Sources))
	for _, src := range a.Sources {
		u := UnknownSource
		if src.Chunk != nil && src.Chunk.SourceURL != "" {
			u = src.Chunk.SourceURL
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// Asker answers natural language questions over the indexed documents.
type Asker interface {
	// Ask answers a question.
	// Returns EINVALID if the question is blank.
	Ask(ctx context.Context, question string) (*Answer, error)
}
