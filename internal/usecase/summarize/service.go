// Package summarize implements the concurrent map-reduce summarization
// engine. Document text is split into bounded chunks, each chunk is
// summarized independently through the shared rate limiter (the map phase),
// and chunk summaries are combined into one final summary, recursing when the
// combined summaries still exceed the output budget (the reduce phase).
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pdf-summary/internal/chunker"
	"pdf-summary/internal/infra/provider"
	"pdf-summary/internal/observability/metrics"
	"pdf-summary/internal/resilience/retry"
	"pdf-summary/internal/utils/text"
)

// RateLimiter gates outbound provider calls. The production implementation
// is the process-wide ratelimit.Limiter; tests substitute a deterministic
// fake.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// Service orchestrates map-reduce summarization over one provider backend.
// The rate limiter is shared with every other Service instance in the
// process; everything else is owned per request.
type Service struct {
	client  provider.Client
	limiter RateLimiter
	cfg     Config

	// retryCfg drives backoff for transient failures; rateRetryCfg is the
	// longer schedule applied when the provider signals a rate limit.
	retryCfg     retry.Config
	rateRetryCfg retry.Config
}

// NewService creates a summarization service. The limiter must be the
// process-wide instance: it is the single gate bounding aggregate provider
// call rate across all concurrent requests.
func NewService(client provider.Client, limiter RateLimiter, cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}
	return &Service{
		client:       client,
		limiter:      limiter,
		cfg:          cfg,
		retryCfg:     retry.ChunkCallConfig(),
		rateRetryCfg: retry.RateLimitedConfig(),
	}, nil
}

// Summarize produces a single coherent summary of documentText.
//
// Failure reasons: ErrEmptyInput when there is nothing to summarize,
// ErrProvider when any chunk call exhausts its retry ceiling (the request
// aborts; no partial summary is returned), ErrTooManyLevels when reduce
// recursion exceeds its depth ceiling, and the provider taxonomy errors
// (ErrAuth, ErrInvalidResponse) when a call fails in a non-retryable way.
func (s *Service) Summarize(ctx context.Context, documentText string) (string, error) {
	start := time.Now()

	depthReached := 0
	final, err := s.summarizeLevel(ctx, documentText, 0, &depthReached)

	duration := time.Since(start)
	metrics.RecordDocumentSummarized(err == nil)
	metrics.RecordSummarizationDuration(duration)
	metrics.RecordReduceDepth(depthReached)

	if err != nil {
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("backend", s.client.Name()),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", err
	}

	slog.InfoContext(ctx, "summarization completed",
		slog.String("backend", s.client.Name()),
		slog.Int("input_units", text.EstimateUnits(documentText)),
		slog.Int("summary_units", text.EstimateUnits(final)),
		slog.Int("reduce_depth", depthReached),
		slog.Duration("duration", duration))

	return final, nil
}

// summarizeLevel runs one map+reduce pass over input. At depth 0 the input is
// the raw document; at deeper levels it is the concatenation of the previous
// level's summaries, treated as a new document.
func (s *Service) summarizeLevel(ctx context.Context, input string, depth int, depthReached *int) (string, error) {
	if depth > *depthReached {
		*depthReached = depth
	}

	chunks, err := chunker.Split(input, s.cfg.MaxUnitsPerChunk)
	if err != nil {
		return "", err
	}

	if depth == 0 {
		metrics.RecordChunkCount(len(chunks))
	}
	slog.InfoContext(ctx, "document chunked",
		slog.Int("depth", depth),
		slog.Int("chunks", len(chunks)),
		slog.Int("input_units", text.EstimateUnits(input)))

	// Single-chunk fast path: no fan-out, no combine call.
	if len(chunks) == 1 {
		out, err := s.complete(ctx, s.levelPrompt(depth, chunks[0].Text))
		if err != nil {
			return "", s.escalate(err)
		}
		return out, nil
	}

	summaries, err := s.mapChunks(ctx, chunks, depth)
	if err != nil {
		return "", err
	}

	// Reduce: summaries arrive indexed by chunk ordinal, so document order
	// is already restored no matter which call finished first.
	combined := strings.Join(summaries, summarySeparator)
	if text.EstimateUnits(combined) > s.cfg.MaxOutputUnits {
		// The combined summaries are still too large to reduce in one
		// call: treat them as a new document and recurse.
		if depth+1 >= s.cfg.MaxDepth {
			return "", fmt.Errorf("%w (ceiling %d)", ErrTooManyLevels, s.cfg.MaxDepth)
		}
		return s.summarizeLevel(ctx, combined, depth+1, depthReached)
	}

	out, err := s.complete(ctx, buildReducePrompt(combined))
	if err != nil {
		return "", s.escalate(err)
	}
	return out, nil
}

// mapChunks summarizes every chunk concurrently, bounded by the configured
// worker limit, and returns the summaries in chunk index order. The first
// fatal chunk failure cancels all in-flight siblings.
func (s *Service) mapChunks(ctx context.Context, chunks []chunker.Chunk, depth int) ([]string, error) {
	summaries := make([]string, len(chunks))
	sem := make(chan struct{}, s.cfg.ConcurrencyLimit)
	eg, egCtx := errgroup.WithContext(ctx)

	for _, c := range chunks {
		chunk := c
		eg.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			defer func() { <-sem }()

			out, err := s.complete(egCtx, s.levelPrompt(depth, chunk.Text))
			if err != nil {
				metrics.RecordChunkSummarized(false)
				return fmt.Errorf("chunk %d: %w", chunk.Index, s.escalate(err))
			}
			metrics.RecordChunkSummarized(true)
			summaries[chunk.Index] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// complete performs one provider call through the shared rate limiter with
// per-call timeout and retry. Acquire happens inside the retry loop so every
// attempt, not just the first, is counted against the rate budget. Backoff
// delays are picked per error class: rate-limit rejections wait on the
// longer schedule.
func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	var result string
	err := retry.WithBackoffClassified(ctx, s.retryCfg, s.rateRetryCfg, func() error {
		if err := s.limiter.Acquire(ctx); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()

		out, err := s.client.Complete(callCtx, prompt, provider.Options{
			Model:          s.cfg.Model,
			Temperature:    s.cfg.Temperature,
			MaxOutputUnits: s.cfg.MaxOutputUnits,
		})
		if err != nil {
			return err
		}
		result = out
		return nil
	})
	return result, err
}

// levelPrompt picks the prompt for a chunk at the given depth. Depth 0 chunks
// are raw document excerpts; deeper chunks are batches of earlier summaries
// and get the combine prompt instead.
func (s *Service) levelPrompt(depth int, chunkText string) string {
	if depth == 0 {
		return buildMapPrompt(chunkText)
	}
	return buildReducePrompt(chunkText)
}

// escalate converts a failed call into the request-level failure reason.
// Non-retryable taxonomy errors and cancellation pass through unchanged;
// an exhausted retry ceiling becomes ErrProvider.
func (s *Service) escalate(err error) error {
	if errors.Is(err, provider.ErrAuth) ||
		errors.Is(err, provider.ErrInvalidResponse) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProvider, err)
}
