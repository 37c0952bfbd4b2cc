package extract

import "context"

// Completer is the completion-service boundary. One call sends a prompt,
// optionally with an image, and returns the model's raw text. This
// interface enables mocking the Gemini API in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}
