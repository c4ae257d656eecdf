package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pdf-summary/internal/domain/entity"
	"pdf-summary/internal/observability/metrics"
	"pdf-summary/internal/repository"
)

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) repository.DocumentRepository {
	return &DocumentRepo{db: db}
}

func (repo *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const query = `
INSERT INTO documents (id, filename, page_count, text_units, chunk_count, summary, provider, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	start := time.Now()
	_, err := repo.db.ExecContext(ctx, query,
		doc.ID, doc.Filename, doc.PageCount, doc.TextUnits, doc.ChunkCount,
		doc.Summary, doc.Provider, doc.Model, doc.CreatedAt)
	metrics.RecordDBQuery("create_document", time.Since(start))
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *DocumentRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	const query = `
SELECT id, filename, page_count, text_units, chunk_count, summary, provider, model, created_at
FROM documents
WHERE id = $1
LIMIT 1`

	start := time.Now()
	var doc entity.Document
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&doc.ID, &doc.Filename, &doc.PageCount, &doc.TextUnits, &doc.ChunkCount,
			&doc.Summary, &doc.Provider, &doc.Model, &doc.CreatedAt)
	metrics.RecordDBQuery("get_document", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &doc, nil
}

// ListRecent retrieves documents newest first.
// Uses LIMIT and OFFSET for pagination.
func (repo *DocumentRepo) ListRecent(ctx context.Context, offset, limit int) ([]*entity.Document, error) {
	const query = `
SELECT id, filename, page_count, text_units, chunk_count, summary, provider, model, created_at
FROM documents
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	start := time.Now()
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	metrics.RecordDBQuery("list_documents", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := make([]*entity.Document, 0, limit)
	for rows.Next() {
		var doc entity.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.PageCount, &doc.TextUnits,
			&doc.ChunkCount, &doc.Summary, &doc.Provider, &doc.Model, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// CountDocuments returns the total number of stored documents.
func (repo *DocumentRepo) CountDocuments(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM documents`

	start := time.Now()
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	metrics.RecordDBQuery("count_documents", time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("CountDocuments: %w", err)
	}
	return count, nil
}

func (repo *DocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM documents WHERE id = $1`

	start := time.Now()
	result, err := repo.db.ExecContext(ctx, query, id)
	metrics.RecordDBQuery("delete_document", time.Since(start))
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
