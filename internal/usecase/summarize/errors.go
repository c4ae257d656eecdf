package summarize

import (
	"errors"

	"pdf-summary/internal/chunker"
)

// Failure reasons surfaced by Summarize. Transient chunk-level failures are
// retried internally and never escape; anything returned here aborted the
// whole request.
var (
	// ErrEmptyInput indicates there was no text to summarize.
	// The caller's input problem; maps to a 400-class response.
	ErrEmptyInput = chunker.ErrEmptyInput

	// ErrProvider indicates a chunk call exhausted its retry ceiling.
	// No partial summary is returned: a summary silently missing a chunk
	// would be worse than an explicit failure.
	ErrProvider = errors.New("provider failed after retries")

	// ErrTooManyLevels indicates the reduce recursion exceeded its depth
	// ceiling. Defensive bound; signals pathological document structure.
	ErrTooManyLevels = errors.New("reduce recursion depth exceeded")
)
