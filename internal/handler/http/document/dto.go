// Package document provides HTTP handlers for document-related endpoints.
// It includes handlers for uploading a PDF for summarization and for
// browsing the stored summary history.
package document

import "time"

// DTO represents the JSON structure for document data transfer.
type DTO struct {
	ID         string    `json:"id" example:"3b9e6a54-97b2-4f0e-9e1b-2f4f9a6f8d21"`
	Filename   string    `json:"filename" example:"quarterly-report.pdf"`
	PageCount  int       `json:"page_count" example:"12"`
	TextUnits  int       `json:"text_units" example:"9000"`
	ChunkCount int       `json:"chunk_count" example:"9"`
	Summary    string    `json:"summary" example:"The report covers..."`
	Provider   string    `json:"provider" example:"openai"`
	Model      string    `json:"model" example:"gpt-4o-mini"`
	CreatedAt  time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
}
