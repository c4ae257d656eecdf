// Package entity defines the core domain entities and validation logic for
// the application. It contains the Document business object along with its
// validation rules and domain-specific errors.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document represents one summarized PDF document.
// It records the upload metadata, the extraction result, and the final
// summary together with the provider that produced it.
type Document struct {
	ID        uuid.UUID
	Filename  string
	PageCount int
	// TextUnits is the estimated unit count of the extracted text.
	TextUnits int
	// ChunkCount is how many chunks the map phase processed.
	ChunkCount int
	Summary    string
	Provider   string
	Model      string
	CreatedAt  time.Time
}

// NewDocument constructs a Document with a fresh identifier and creation
// timestamp. Validation happens separately so callers can build partial
// documents during processing.
func NewDocument(filename string) Document {
	return Document{
		ID:        uuid.New(),
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks that the document is complete enough to persist.
func (d Document) Validate() error {
	if d.ID == uuid.Nil {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if err := ValidateFilename(d.Filename); err != nil {
		return err
	}
	if d.Summary == "" {
		return &ValidationError{Field: "summary", Message: "summary is required"}
	}
	if d.PageCount < 0 {
		return &ValidationError{Field: "page_count", Message: "page count cannot be negative"}
	}
	if d.Provider == "" {
		return &ValidationError{Field: "provider", Message: "provider is required"}
	}
	return nil
}
