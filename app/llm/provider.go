package llm

import (
	"context"
)

// Provider is a text-generation collaborator. Implementations send a single
// prompt and return the completed text, without streaming.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	APIKey    string
	APIURL    string
	Model     string
	MaxTokens int
}
