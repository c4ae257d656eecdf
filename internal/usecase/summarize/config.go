package summarize

import (
	"fmt"
	"time"
)

// Config holds the engine parameters for one summarization service.
type Config struct {
	// Model is the backend model identifier passed to every provider call.
	Model string

	// Temperature controls sampling randomness for provider calls.
	Temperature float32

	// MaxOutputUnits bounds response length and decides when the reduce
	// phase must recurse instead of combining in one call.
	MaxOutputUnits int

	// MaxUnitsPerChunk is the chunker budget for the map phase.
	MaxUnitsPerChunk int

	// ConcurrencyLimit bounds how many map-phase calls run at once.
	// Fixed at configuration time, independent of chunk count.
	ConcurrencyLimit int

	// MaxDepth is the reduce recursion ceiling.
	MaxDepth int

	// CallTimeout is the per-provider-call deadline. Exceeding it counts
	// as a transient failure for retry purposes.
	CallTimeout time.Duration
}

// DefaultConfig returns the engine defaults. Chunk budget of 1000 units
// corresponds to roughly 4000 characters of input text.
func DefaultConfig() Config {
	return Config{
		Temperature:      0.3,
		MaxOutputUnits:   1500,
		MaxUnitsPerChunk: 1000,
		ConcurrencyLimit: 5,
		MaxDepth:         5,
		CallTimeout:      60 * time.Second,
	}
}

// Validate checks the configuration and returns an error if invalid.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxOutputUnits <= 0 {
		return fmt.Errorf("max output units must be positive, got %d", c.MaxOutputUnits)
	}
	if c.MaxUnitsPerChunk <= 0 {
		return fmt.Errorf("max units per chunk must be positive, got %d", c.MaxUnitsPerChunk)
	}
	if c.ConcurrencyLimit <= 0 {
		return fmt.Errorf("concurrency limit must be positive, got %d", c.ConcurrencyLimit)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %v", c.CallTimeout)
	}
	return nil
}
