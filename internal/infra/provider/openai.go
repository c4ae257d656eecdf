package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"pdf-summary/internal/resilience/circuitbreaker"
	"pdf-summary/internal/utils/text"
)

// openAIStyle implements Client against any chat-completions endpoint that
// speaks the OpenAI wire format. Both the first-party OpenAI backend and
// OpenAI-compatible third parties (io.net and similar) share this adapter;
// they differ only in base URL and breaker configuration.
type openAIStyle struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	name            string
	metricsRecorder CompletionMetricsRecorder
}

// NewOpenAI creates the OpenAI backend adapter with the given API key.
func NewOpenAI(apiKey string) Client {
	slog.Info("Initialized OpenAI provider")
	return &openAIStyle{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		name:            BackendOpenAI,
		metricsRecorder: NewPrometheusCompletionMetrics(),
	}
}

// NewCompatible creates an adapter for an OpenAI-compatible third-party
// endpoint at baseURL.
func NewCompatible(apiKey, baseURL string) Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	slog.Info("Initialized OpenAI-compatible provider",
		slog.String("base_url", baseURL))
	return &openAIStyle{
		client:          openai.NewClientWithConfig(cfg),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.CompatibleAPIConfig()),
		name:            BackendCompatible,
		metricsRecorder: NewPrometheusCompletionMetrics(),
	}
}

// Name implements Client.
func (o *openAIStyle) Name() string { return o.name }

// Complete implements Client. The call runs through the circuit breaker;
// failures are normalized into the shared taxonomy.
func (o *openAIStyle) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doComplete(ctx, prompt, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("provider circuit breaker open, request rejected",
				slog.String("backend", o.name),
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("%s unavailable: %w", o.name, ErrTransient)
		}
		return "", err
	}
	return result.(string), nil
}

// doComplete performs the actual API call without the circuit breaker.
func (o *openAIStyle) doComplete(ctx context.Context, prompt string, opts Options) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting completion",
		slog.String("backend", o.name),
		slog.String("request_id", requestID),
		slog.String("model", opts.Model),
		slog.Int("prompt_units", text.EstimateUnits(prompt)))

	start := time.Now()
	o.metricsRecorder.RecordCall(o.name)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxOutputUnits,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)
	o.metricsRecorder.RecordDuration(o.name, duration)

	if err != nil {
		normalized := o.normalizeErr(err)
		o.metricsRecorder.RecordFailure(o.name, errorClass(normalized))
		slog.ErrorContext(ctx, "Completion failed",
			slog.String("backend", o.name),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", normalized
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		o.metricsRecorder.RecordFailure(o.name, errorClass(ErrInvalidResponse))
		slog.ErrorContext(ctx, "Completion returned empty response",
			slog.String("backend", o.name),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("%s: empty completion: %w", o.name, ErrInvalidResponse)
	}

	completion := resp.Choices[0].Message.Content
	o.metricsRecorder.RecordOutputUnits(text.EstimateUnits(completion))

	slog.InfoContext(ctx, "Completion finished",
		slog.String("backend", o.name),
		slog.String("request_id", requestID),
		slog.Int("output_units", text.EstimateUnits(completion)),
		slog.Duration("duration", duration))

	return completion, nil
}

// normalizeErr maps go-openai client errors onto the shared taxonomy.
func (o *openAIStyle) normalizeErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s api error (status %d): %w", o.name, apiErr.HTTPStatusCode, classifyStatus(apiErr.HTTPStatusCode))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%s request error (status %d): %w", o.name, reqErr.HTTPStatusCode, classifyStatus(reqErr.HTTPStatusCode))
	}
	return fmt.Errorf("%s call failed: %w", o.name, classifyCallErr(err))
}
