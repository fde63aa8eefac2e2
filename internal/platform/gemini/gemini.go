// Package gemini holds the shared client setup for the speech and image
// adapters.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperrors "holoalarm/internal/platform/errors"
)

// ContentGenerator is the slice of *genai.Models the adapters call. Tests
// substitute a fake.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient returns a Gemini API client, or ErrServiceUnavailable when no
// API key is configured.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is not configured", apperrors.ErrServiceUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new gemini client: %w", err)
	}
	return client, nil
}

// FirstInlineData returns the first inline-data part of the first candidate.
func FirstInlineData(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, apperrors.ErrNoContent
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil, apperrors.ErrNoContent
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, nil
		}
	}
	return nil, apperrors.ErrNoContent
}
