package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiPrompt = "Translate the following Japanese real-estate listing text to English. " +
	"Reply with the translation only, no explanations or quotes.\n\n"

// GeminiTranslator uses the Gemini API as a translation backend when no
// DeepL credential is configured. Temperature 0 keeps repeated crawls of
// the same text stable enough for change detection.
type GeminiTranslator struct {
	model *genai.GenerativeModel
}

func NewGeminiTranslator(ctx context.Context, apiKey string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.0)
	model.SetTopK(1)
	model.SetMaxOutputTokens(256)

	return &GeminiTranslator{model: model}, nil
}

func (t *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	resp, err := t.model.GenerateContent(ctx, genai.Text(geminiPrompt+text))
	if err != nil {
		return "", fmt.Errorf("gemini: generate failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("gemini: no text in response")
	}
	return result, nil
}
