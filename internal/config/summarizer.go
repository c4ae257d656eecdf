package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// SummarizerConfig holds configuration for the summarization pipeline.
type SummarizerConfig struct {
	// Provider selects the LLM backend: "openai", "gemini", "claude",
	// "compatible", or "noop".
	// Default: "openai"
	Provider string

	// APIKey authenticates against the selected backend. Loaded from the
	// backend-specific variable (OPENAI_API_KEY, GEMINI_API_KEY, ...).
	APIKey string

	// BaseURL overrides the API endpoint. Required for "compatible"
	// backends, optional elsewhere.
	BaseURL string

	// Model is the model identifier sent with every completion call.
	// Default depends on the selected provider.
	Model string

	// Temperature for completion sampling.
	// Default: 0.3
	Temperature float32

	// MaxOutputUnits bounds summary length per call.
	// Default: 1500
	MaxOutputUnits int

	// MaxUnitsPerChunk is the chunk budget for the map phase.
	// Default: 1000
	MaxUnitsPerChunk int

	// ConcurrencyLimit bounds concurrent map-phase calls.
	// Default: 5
	ConcurrencyLimit int

	// MaxDepth is the reduce recursion ceiling.
	// Default: 5
	MaxDepth int

	// CallTimeout is the per-completion-call deadline.
	// Default: 60 seconds
	CallTimeout time.Duration

	// RequestsPerMinute is the process-wide provider call budget.
	// Default: 5
	RequestsPerMinute int
}

// defaultModels maps each backend to the model used when LLM_MODEL is unset.
var defaultModels = map[string]string{
	"openai":     "gpt-4o-mini",
	"gemini":     "gemini-1.5-flash",
	"claude":     "claude-3-5-haiku-latest",
	"compatible": "meta-llama/Llama-3.3-70B-Instruct",
	"noop":       "noop",
}

// apiKeyEnvVars maps each backend to its API key environment variable.
var apiKeyEnvVars = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"gemini":     "GEMINI_API_KEY",
	"claude":     "ANTHROPIC_API_KEY",
	"compatible": "COMPATIBLE_API_KEY",
}

// LoadSummarizerConfig loads summarizer configuration from environment
// variables. Returns a config with defaults for anything not set.
func LoadSummarizerConfig() (*SummarizerConfig, error) {
	provider := getEnvOrDefault("LLM_PROVIDER", "openai")

	config := &SummarizerConfig{
		Provider:          provider,
		APIKey:            os.Getenv(apiKeyEnvVars[provider]),
		BaseURL:           os.Getenv("LLM_BASE_URL"),
		Model:             getEnvOrDefault("LLM_MODEL", defaultModels[provider]),
		Temperature:       float32(getEnvFloat("LLM_TEMPERATURE", 0.3)),
		MaxOutputUnits:    getEnvInt("SUMMARIZER_MAX_OUTPUT_UNITS", 1500),
		MaxUnitsPerChunk:  getEnvInt("SUMMARIZER_CHUNK_UNITS", 1000),
		ConcurrencyLimit:  getEnvInt("SUMMARIZER_CONCURRENCY", 5),
		MaxDepth:          getEnvInt("SUMMARIZER_MAX_DEPTH", 5),
		CallTimeout:       getEnvDuration("SUMMARIZER_CALL_TIMEOUT", 60*time.Second),
		RequestsPerMinute: getEnvInt("LLM_REQUESTS_PER_MINUTE", 5),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *SummarizerConfig) Validate() error {
	switch c.Provider {
	case "openai", "gemini", "claude", "compatible", "noop":
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of openai, gemini, claude, compatible, noop; got %q", c.Provider)
	}

	if c.Provider != "noop" && c.APIKey == "" {
		return fmt.Errorf("%s must be set for provider %q", apiKeyEnvVars[c.Provider], c.Provider)
	}

	if c.Provider == "compatible" && c.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL must be set for provider \"compatible\"")
	}

	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL cannot be empty")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", c.Temperature)
	}

	if c.MaxOutputUnits <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_OUTPUT_UNITS must be positive")
	}

	if c.MaxUnitsPerChunk <= 0 {
		return fmt.Errorf("SUMMARIZER_CHUNK_UNITS must be positive")
	}

	if c.ConcurrencyLimit <= 0 {
		return fmt.Errorf("SUMMARIZER_CONCURRENCY must be positive")
	}

	if c.MaxDepth <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_DEPTH must be positive")
	}

	if c.CallTimeout <= 0 {
		return fmt.Errorf("SUMMARIZER_CALL_TIMEOUT must be positive")
	}

	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_MINUTE must be positive")
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool parses boolean environment variable with default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt parses integer environment variable with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat parses float environment variable with default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration parses duration environment variable with default.
// Supports formats like "30s", "1m", "2h".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
