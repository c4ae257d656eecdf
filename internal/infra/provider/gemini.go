package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"pdf-summary/internal/resilience/circuitbreaker"
	"pdf-summary/internal/utils/text"
)

const geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini implements Client against Google's Generative Language REST API.
type Gemini struct {
	apiKey          string
	baseURL         string
	httpClient      *http.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	metricsRecorder CompletionMetricsRecorder
}

// geminiPart is a single text part in Gemini's content format.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiContent represents content in Gemini's API format.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiGenConfig carries generation parameters.
type geminiGenConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiRequest is the request body for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

// geminiResponse is the response body for the generateContent endpoint.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGemini creates the Gemini backend adapter with the given API key.
func NewGemini(apiKey string) Client {
	slog.Info("Initialized Gemini provider")
	return &Gemini{
		apiKey:          apiKey,
		baseURL:         geminiAPIURL,
		httpClient:      &http.Client{},
		circuitBreaker:  circuitbreaker.New(circuitbreaker.GeminiAPIConfig()),
		metricsRecorder: NewPrometheusCompletionMetrics(),
	}
}

// Name implements Client.
func (g *Gemini) Name() string { return BackendGemini }

// Complete implements Client.
func (g *Gemini) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	result, err := g.circuitBreaker.Execute(func() (interface{}, error) {
		return g.doComplete(ctx, prompt, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("provider circuit breaker open, request rejected",
				slog.String("backend", BackendGemini),
				slog.String("state", g.circuitBreaker.State().String()))
			return "", fmt.Errorf("%s unavailable: %w", BackendGemini, ErrTransient)
		}
		return "", err
	}
	return result.(string), nil
}

func (g *Gemini) doComplete(ctx context.Context, prompt string, opts Options) (string, error) {
	requestID := uuid.New().String()

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputUnits,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, opts.Model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.InfoContext(ctx, "Starting completion",
		slog.String("backend", BackendGemini),
		slog.String("request_id", requestID),
		slog.String("model", opts.Model),
		slog.Int("prompt_units", text.EstimateUnits(prompt)))

	start := time.Now()
	g.metricsRecorder.RecordCall(BackendGemini)

	resp, err := g.httpClient.Do(req)

	if err != nil {
		duration := time.Since(start)
		normalized := fmt.Errorf("gemini call failed: %w", classifyCallErr(err))
		g.metricsRecorder.RecordDuration(BackendGemini, duration)
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(normalized))
		slog.ErrorContext(ctx, "Completion failed",
			slog.String("backend", BackendGemini),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", normalized
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	g.metricsRecorder.RecordDuration(BackendGemini, duration)
	if err != nil {
		normalized := fmt.Errorf("gemini: read response: %w", classifyCallErr(err))
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(normalized))
		return "", normalized
	}

	if resp.StatusCode != http.StatusOK {
		normalized := fmt.Errorf("gemini api error (status %d): %w", resp.StatusCode, classifyStatus(resp.StatusCode))
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(normalized))
		slog.ErrorContext(ctx, "Completion failed",
			slog.String("backend", BackendGemini),
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", duration))
		return "", normalized
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(ErrInvalidResponse))
		return "", fmt.Errorf("gemini: unmarshal response: %w", ErrInvalidResponse)
	}
	if parsed.Error != nil {
		normalized := fmt.Errorf("gemini api error %s: %w", parsed.Error.Status, classifyStatus(parsed.Error.Code))
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(normalized))
		return "", normalized
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(ErrInvalidResponse))
		return "", fmt.Errorf("gemini: no candidates in response: %w", ErrInvalidResponse)
	}

	var out bytes.Buffer
	for _, part := range parsed.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	completion := out.String()
	if completion == "" {
		g.metricsRecorder.RecordFailure(BackendGemini, errorClass(ErrInvalidResponse))
		return "", fmt.Errorf("gemini: empty completion: %w", ErrInvalidResponse)
	}

	g.metricsRecorder.RecordOutputUnits(text.EstimateUnits(completion))
	slog.InfoContext(ctx, "Completion finished",
		slog.String("backend", BackendGemini),
		slog.String("request_id", requestID),
		slog.Int("output_units", text.EstimateUnits(completion)),
		slog.Duration("duration", duration))

	return completion, nil
}
