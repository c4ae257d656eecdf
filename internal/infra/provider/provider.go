// Package provider implements LLM backend adapters behind a single Client
// capability. Each adapter normalizes its backend's failures into the shared
// error taxonomy so the map-reduce summarizer's retry policy stays
// backend-agnostic. Adapters include circuit breakers and metrics recording
// for reliability and observability; retry is the caller's concern.
package provider

import (
	"context"
	"fmt"
)

// Options carries per-call generation parameters.
type Options struct {
	// Model is the backend model identifier.
	Model string

	// Temperature controls sampling randomness.
	Temperature float32

	// MaxOutputUnits bounds the response length in estimated units (tokens).
	MaxOutputUnits int
}

// Client is the capability every backend adapter implements.
type Client interface {
	// Complete sends the prompt and returns the generated text.
	// Failures are normalized into ErrRateLimited, ErrAuth, ErrTransient,
	// or ErrInvalidResponse.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)

	// Name returns the adapter name for logging and metrics.
	Name() string
}

// Backend identifiers accepted by New.
const (
	BackendOpenAI     = "openai"
	BackendGemini     = "gemini"
	BackendCompatible = "compatible"
	BackendClaude     = "claude"
	BackendNoop       = "noop"
)

// Config selects and parameterizes a backend adapter at construction time.
// Downstream code only ever sees the Client interface.
type Config struct {
	// Backend is one of the Backend* constants.
	Backend string

	// APIKey authenticates against the backend.
	APIKey string

	// BaseURL overrides the API endpoint. Required for the
	// OpenAI-compatible backend, ignored by the others.
	BaseURL string
}

// New constructs the adapter selected by cfg.Backend.
func New(cfg Config) (Client, error) {
	switch cfg.Backend {
	case BackendOpenAI:
		return NewOpenAI(cfg.APIKey), nil
	case BackendGemini:
		return NewGemini(cfg.APIKey), nil
	case BackendCompatible:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base URL is required for the %s backend", BackendCompatible)
		}
		return NewCompatible(cfg.APIKey, cfg.BaseURL), nil
	case BackendClaude:
		return NewClaude(cfg.APIKey), nil
	case BackendNoop:
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("unknown provider backend: %q", cfg.Backend)
	}
}
