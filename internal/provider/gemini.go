package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Client using the Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini provider client
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Complete sends a generation request and returns the response content
func (c *GeminiClient) Complete(ctx context.Context, model, instruction, userContent string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(userContent), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no response from Gemini")
	}

	return text, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "gemini"
}
