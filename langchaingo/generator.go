package langchaingo

import (
	"context"

	"github.com/fwojciec/helpdesk"
	"github.com/tmc/langchaingo/llms"
)

var _ helpdesk.Generator = (*Generator)(nil)

// Generator implements helpdesk.Generator using a langchaingo chat model.
type Generator struct {
	model    llms.Model
	detector helpdesk.LanguageDetector
}

// NewGenerator creates a new Generator. The detector is optional.
func NewGenerator(model llms.Model, detector helpdesk.LanguageDetector) *Generator {
	return &Generator{model: model, detector: detector}
}

// Generate answers the question from the retrieved chunks.
func (g *Generator) Generate(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
	if question == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "question required")
	}

	var language string
	if g.detector != nil {
		language = g.detector.DetectLanguage(question)
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(helpdesk.SystemInstruction)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(helpdesk.BuildPrompt(question, results, language))},
		},
	}

	resp, err := g.model.GenerateContent(ctx, content, llms.WithTemperature(0.1))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", helpdesk.Errorf(helpdesk.EINTERNAL, "model returned no choices")
	}

	return resp.Choices[0].Content, nil
}
