package provider

import (
	"context"
	"errors"
)

// Sentinel errors forming the shared taxonomy every backend normalizes into.
// The summarizer's retry policy is written against these, never against
// backend-specific error types.
var (
	// ErrRateLimited indicates the backend rejected the call for exceeding
	// its rate budget (HTTP 429 or equivalent). Retryable with backoff.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrAuth indicates bad or missing credentials (HTTP 401/403).
	// A configuration problem; never retried.
	ErrAuth = errors.New("provider authentication failed")

	// ErrTransient indicates a network-level or server-side failure that is
	// likely to clear on its own (timeouts, connection resets, HTTP 5xx).
	ErrTransient = errors.New("transient provider error")

	// ErrInvalidResponse indicates the backend answered but the content was
	// unusable (empty choices, malformed body). Not retried.
	ErrInvalidResponse = errors.New("provider returned invalid response")
)

// IsRetryable reports whether a normalized provider error is worth retrying.
// Rate limit and transient errors recover with backoff; auth and invalid
// response errors do not, so they escalate immediately.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransient)
}

// classifyStatus maps an HTTP status code onto the shared taxonomy.
// Unknown client-side statuses count as invalid response: the request itself
// was rejected in a way retrying cannot fix.
func classifyStatus(code int) error {
	switch {
	case code == 429:
		return ErrRateLimited
	case code == 401 || code == 403:
		return ErrAuth
	case code == 408:
		return ErrTransient
	case code >= 500 && code < 600:
		return ErrTransient
	default:
		return ErrInvalidResponse
	}
}

// classifyCallErr maps a failed backend call with no usable HTTP status onto
// the taxonomy. Cancellation propagates untouched so callers can distinguish
// their own context expiring from provider trouble; everything else at the
// transport level (timeouts, resets, DNS) is transient. A per-call deadline
// expiring is exactly the signal the retry policy backs off on.
func classifyCallErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return ErrTransient
}
