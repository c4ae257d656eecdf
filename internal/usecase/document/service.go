package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"pdf-summary/internal/chunker"
	"pdf-summary/internal/common/pagination"
	"pdf-summary/internal/domain/entity"
	"pdf-summary/internal/infra/extractor"
	"pdf-summary/internal/repository"
	"pdf-summary/internal/utils/text"
)

// TextExtractor pulls text out of a PDF file on disk.
type TextExtractor interface {
	Extract(ctx context.Context, pdfPath string) (*extractor.Result, error)
}

// Summarizer produces one summary for a document's text.
type Summarizer interface {
	Summarize(ctx context.Context, documentText string) (string, error)
}

// Service provides document processing use cases. It extracts text from an
// uploaded PDF, summarizes it, and optionally persists the result.
// Repo may be nil when no database is configured; Process still works and
// history operations return ErrPersistenceDisabled.
type Service struct {
	Extractor  TextExtractor
	Summarizer Summarizer
	Repo       repository.DocumentRepository

	// Provider and Model are recorded on every processed document.
	Provider string
	Model    string
	// ChunkUnits mirrors the summarizer's chunk budget and is used to
	// report how many chunks the map phase processed.
	ChunkUnits int
}

// PaginatedResult represents the result of a paginated history query.
type PaginatedResult struct {
	Data       []*entity.Document
	Pagination pagination.Metadata
}

// Process extracts text from the PDF at pdfPath, summarizes it, and persists
// the resulting document when a repository is configured. The returned
// document is complete either way.
func (s *Service) Process(ctx context.Context, pdfPath, filename string) (*entity.Document, error) {
	if err := entity.ValidateFilename(filename); err != nil {
		return nil, err
	}

	extracted, err := s.Extractor.Extract(ctx, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	summary, err := s.Summarizer.Summarize(ctx, extracted.Text)
	if err != nil {
		return nil, fmt.Errorf("summarize document: %w", err)
	}

	doc := entity.NewDocument(filename)
	doc.PageCount = extracted.Pages
	doc.TextUnits = text.EstimateUnits(extracted.Text)
	doc.ChunkCount = s.chunkCount(extracted.Text)
	doc.Summary = summary
	doc.Provider = s.Provider
	doc.Model = s.Model

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, &doc); err != nil {
			// The summary itself is good; losing the history row is
			// not worth failing the request.
			slog.ErrorContext(ctx, "failed to persist document",
				slog.String("document_id", doc.ID.String()),
				slog.Any("error", err))
		}
	}

	return &doc, nil
}

// Get retrieves a stored document by its string ID.
func (s *Service) Get(ctx context.Context, id string) (*entity.Document, error) {
	if s.Repo == nil {
		return nil, ErrPersistenceDisabled
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDocumentID, id)
	}

	doc, err := s.Repo.Get(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// ListPaginated retrieves the document history newest first.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	if s.Repo == nil {
		return nil, ErrPersistenceDisabled
	}

	total, err := s.Repo.CountDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	docs, err := s.Repo.ListRecent(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return &PaginatedResult{
		Data:       docs,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Delete removes a stored document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Repo == nil {
		return ErrPersistenceDisabled
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentID, id)
	}

	if err := s.Repo.Delete(ctx, parsed); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// chunkCount reports how many chunks the map phase saw for this text.
func (s *Service) chunkCount(documentText string) int {
	if s.ChunkUnits <= 0 {
		return 0
	}
	chunks, err := chunker.Split(documentText, s.ChunkUnits)
	if err != nil {
		return 0
	}
	return len(chunks)
}
