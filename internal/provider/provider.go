// Package provider abstracts the LLM completion API used for translation.
// All retry and validation policy lives with the caller; clients here only
// perform a single request and report failures.
package provider

import (
	"context"
	"fmt"
	"strings"
)

// Client is the sole network boundary of the translation engine.
type Client interface {
	// Complete sends a system instruction and user content to the model
	// and returns the raw response content.
	Complete(ctx context.Context, model, instruction, userContent string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds provider selection and credentials
type Config struct {
	Provider  string // "openai" or "gemini"; empty selects by model name
	OpenAIKey string
	GeminiKey string
}

// NewClient creates the appropriate provider client based on configuration.
// When no provider is named explicitly, models starting with "gemini" select
// the Gemini backend and everything else goes to OpenAI.
func NewClient(ctx context.Context, config *Config, model string) (Client, error) {
	name := config.Provider
	if name == "" {
		if strings.HasPrefix(model, "gemini") {
			name = "gemini"
		} else {
			name = "openai"
		}
	}

	switch name {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIClient(config.OpenAIKey), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiClient(ctx, config.GeminiKey)

	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
