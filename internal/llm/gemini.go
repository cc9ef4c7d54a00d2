// Package llm provides the generative-text completion client.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"finbot/internal/errors"
)

// Client defines the interface for text completion. The bot depends on this
// rather than a concrete provider so handlers are testable offline.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient implements Client using the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini completion client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Complete sends a single free-text prompt with no conversation history and
// returns the model's completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", errors.NewUpstreamError("gemini", "generate", err)
	}

	var out strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}

	if out.Len() == 0 {
		return "", errors.NewUpstreamError("gemini", "generate",
			fmt.Errorf("empty response from model"))
	}
	return out.String(), nil
}
