// Package resilience groups reliability patterns for external LLM API calls.
//
// Subpackages:
//   - retry: exponential backoff with jitter for transient failures
//   - circuitbreaker: gobreaker-based breakers preventing cascading failures
package resilience
