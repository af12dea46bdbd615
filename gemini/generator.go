package gemini

import (
	"context"

	"github.com/fwojciec/helpdesk"
	"google.golang.org/genai"
)

var _ helpdesk.Generator = (*Generator)(nil)

// Generator implements helpdesk.Generator using Google Gemini.
type Generator struct {
	client   *genai.Client
	model    string
	detector helpdesk.LanguageDetector
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
// The detector is optional.
func NewGenerator(client *genai.Client, model string, detector helpdesk.LanguageDetector) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model, detector: detector}
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

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: helpdesk.BuildPrompt(question, results, language)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", helpdesk.Errorf(helpdesk.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: helpdesk.SystemInstruction}},
		},
		Temperature: &temp,
	}
}
