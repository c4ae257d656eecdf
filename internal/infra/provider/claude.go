package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"pdf-summary/internal/resilience/circuitbreaker"
	"pdf-summary/internal/utils/text"
)

// Claude implements Client using Anthropic's Messages API.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	metricsRecorder CompletionMetricsRecorder
}

// NewClaude creates the Claude backend adapter with the given API key.
func NewClaude(apiKey string) Client {
	slog.Info("Initialized Claude provider")
	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		metricsRecorder: NewPrometheusCompletionMetrics(),
	}
}

// Name implements Client.
func (c *Claude) Name() string { return BackendClaude }

// Complete implements Client.
func (c *Claude) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doComplete(ctx, prompt, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("provider circuit breaker open, request rejected",
				slog.String("backend", BackendClaude),
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("%s unavailable: %w", BackendClaude, ErrTransient)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *Claude) doComplete(ctx context.Context, prompt string, opts Options) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting completion",
		slog.String("backend", BackendClaude),
		slog.String("request_id", requestID),
		slog.String("model", opts.Model),
		slog.Int("prompt_units", text.EstimateUnits(prompt)))

	start := time.Now()
	c.metricsRecorder.RecordCall(BackendClaude)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(opts.Model),
		MaxTokens:   int64(opts.MaxOutputUnits),
		Temperature: anthropic.Float(float64(opts.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)
	c.metricsRecorder.RecordDuration(BackendClaude, duration)

	if err != nil {
		normalized := c.normalizeErr(err)
		c.metricsRecorder.RecordFailure(BackendClaude, errorClass(normalized))
		slog.ErrorContext(ctx, "Completion failed",
			slog.String("backend", BackendClaude),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", normalized
	}

	if len(message.Content) == 0 {
		c.metricsRecorder.RecordFailure(BackendClaude, errorClass(ErrInvalidResponse))
		return "", fmt.Errorf("claude: empty response: %w", ErrInvalidResponse)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		c.metricsRecorder.RecordFailure(BackendClaude, errorClass(ErrInvalidResponse))
		return "", fmt.Errorf("claude: unexpected response type: %w", ErrInvalidResponse)
	}

	completion := textBlock.Text
	if completion == "" {
		c.metricsRecorder.RecordFailure(BackendClaude, errorClass(ErrInvalidResponse))
		return "", fmt.Errorf("claude: empty completion: %w", ErrInvalidResponse)
	}

	c.metricsRecorder.RecordOutputUnits(text.EstimateUnits(completion))
	slog.InfoContext(ctx, "Completion finished",
		slog.String("backend", BackendClaude),
		slog.String("request_id", requestID),
		slog.Int("output_units", text.EstimateUnits(completion)),
		slog.Duration("duration", duration))

	return completion, nil
}

// normalizeErr maps Anthropic SDK errors onto the shared taxonomy.
func (c *Claude) normalizeErr(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("claude api error (status %d): %w", apiErr.StatusCode, classifyStatus(apiErr.StatusCode))
	}
	return fmt.Errorf("claude call failed: %w", classifyCallErr(err))
}
