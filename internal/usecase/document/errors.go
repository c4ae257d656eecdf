// Package document provides use cases for processing and managing summarized
// documents. It orchestrates text extraction, summarization, and persistence.
package document

import "errors"

// Sentinel errors for document use case operations.
var (
	// ErrDocumentNotFound indicates that the requested document was not found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidDocumentID indicates that the provided document ID is not a
	// valid UUID.
	ErrInvalidDocumentID = errors.New("invalid document ID")

	// ErrPersistenceDisabled indicates that no database is configured, so
	// history operations are unavailable.
	ErrPersistenceDisabled = errors.New("persistence is not configured")
)
