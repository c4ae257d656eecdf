// Package observability groups cross-cutting observability concerns.
//
// Subpackages:
//   - logging: structured logging with log/slog and request ID propagation
//   - metrics: centralized Prometheus metrics for summarization, extraction, and DB
package observability
