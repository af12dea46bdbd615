package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/gemini"
	"github.com/fwojciec/helpdesk/langchaingo"
	"github.com/fwojciec/helpdesk/whatlanggo"
)

// providerNames are the display names of the supported providers.
var providerNames = map[string]string{
	"gemini": "Gemini",
	"openai": "OpenAI",
}

// footer names the stack answering questions on the web page.
func footer(provider string) string {
	name, ok := providerNames[provider]
	if !ok {
		name = provider
	}
	return fmt.Sprintf("Built with Go, %s and SQLite", name)
}

// provider bundles the model-backed services of one LLM provider.
type provider struct {
	embedder  helpdesk.Embedder
	generator helpdesk.Generator
	tokens    helpdesk.TokenCounter
}

func newProvider(ctx context.Context, g *Globals, stderr io.Writer, logger *slog.Logger) (*provider, error) {
	detector := whatlanggo.NewDetector()

	switch g.Provider {
	case "openai":
		llm, err := langchaingo.NewClient(langchaingo.Config{
			BaseURL:        g.OpenAIBaseURL,
			APIKey:         g.OpenAIAPIKey,
			Model:          g.Model,
			EmbeddingModel: g.EmbeddingModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		embedder, err := langchaingo.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		return &provider{
			embedder:  embedder,
			generator: langchaingo.NewGenerator(llm, detector),
		}, nil

	default:
		if g.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY or use --provider=openai")
			return nil, helpdesk.Errorf(helpdesk.EINVALID, "gemini api key required")
		}
		client, err := gemini.NewClient(ctx, g.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}

		model := g.Model
		if model == "" {
			model = gemini.DefaultModel
		}
		p := &provider{
			embedder:  gemini.NewEmbedder(client, g.EmbeddingModel),
			generator: gemini.NewGenerator(client, model, detector),
		}
		if tc, err := gemini.NewTokenCounter(model); err != nil {
			logger.Warn("token counting disabled", "model", model, "err", err)
		} else {
			p.tokens = tc
		}
		return p, nil
	}
}
