// Package langchaingo implements splitting, embedding and answer generation
// with github.com/tmc/langchaingo, against any OpenAI-compatible endpoint.
package langchaingo

import (
	"github.com/tmc/langchaingo/llms/openai"
)

// Default model names for OpenAI endpoints.
const (
	DefaultModel          = "gpt-4"
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// Config holds the connection settings of an OpenAI-compatible endpoint.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	EmbeddingModel string
}

// NewClient creates an OpenAI client for chat and embeddings. Empty models
// select the defaults.
func NewClient(cfg Config) (*openai.LLM, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}

	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithEmbeddingModel(embeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	// Local OpenAI-compatible services accept any token.
	token := cfg.APIKey
	if token == "" {
		token = "none"
	}
	opts = append(opts, openai.WithToken(token))

	return openai.New(opts...)
}
