package helpdesk

import "context"

// Embedder generates vector embeddings from text.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedDocuments embeds texts that will be stored in the index.
	// The returned slice is in the same order as texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a question for searching the index.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator synthesizes an answer from a question and the retrieved chunks.
type Generator interface {
	Generate(ctx context.Context, question string, results []SearchResult) (string, error)
}

// LanguageDetector names the natural language of a text, such as "English".
// It returns an empty string when the language cannot be detected reliably.
type LanguageDetector interface {
	DetectLanguage(text string) string
}
