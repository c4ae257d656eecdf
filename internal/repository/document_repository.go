package repository

import (
	"context"

	"github.com/google/uuid"

	"pdf-summary/internal/domain/entity"
)

type DocumentRepository interface {
	// Create persists a completed document summary.
	Create(ctx context.Context, doc *entity.Document) error
	// Get retrieves a document by ID.
	// Returns (nil, nil) if the document is not found.
	Get(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// ListRecent retrieves documents ordered by creation time descending.
	// Uses LIMIT and OFFSET for pagination.
	ListRecent(ctx context.Context, offset, limit int) ([]*entity.Document, error)
	// CountDocuments returns the total number of stored documents.
	CountDocuments(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
