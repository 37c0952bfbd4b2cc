package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter is the concrete Completer backed by the Gemini API. One
// instance serves both the text and vision paths; the model is fixed at
// construction.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates the shared Gemini client.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiCompleter: create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete sends a text-only prompt and returns the raw model text.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	return g.generate(ctx, contents)
}

// CompleteVision sends a prompt together with an inline image.
func (g *GeminiCompleter) CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     image,
					},
				},
			},
		},
	}
	return g.generate(ctx, contents)
}

func (g *GeminiCompleter) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
