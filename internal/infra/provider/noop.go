package provider

import (
	"context"
	"strings"
)

// Noop is a provider that fabricates a trivial completion without calling any
// backend. This is useful for testing and development when real summarization
// is not needed.
type Noop struct{}

// NewNoop creates a new Noop provider.
func NewNoop() *Noop {
	return &Noop{}
}

// Name implements Client.
func (n *Noop) Name() string { return BackendNoop }

// Complete returns the tail of the prompt truncated to a short excerpt,
// so map-reduce plumbing can be exercised end to end offline.
func (n *Noop) Complete(_ context.Context, prompt string, _ Options) (string, error) {
	const maxLength = 500
	body := prompt
	if idx := strings.Index(body, ":\n\n"); idx >= 0 {
		body = body[idx+3:]
	}
	if len(body) <= maxLength {
		return body, nil
	}
	return body[:maxLength] + "...", nil
}
