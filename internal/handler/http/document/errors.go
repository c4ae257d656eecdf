package document

import (
	"errors"
	"net/http"

	"pdf-summary/internal/domain/entity"
	"pdf-summary/internal/handler/http/respond"
	"pdf-summary/internal/infra/extractor"
	docUC "pdf-summary/internal/usecase/document"
	sumUC "pdf-summary/internal/usecase/summarize"
)

// respondError maps processing errors onto HTTP status codes and
// user-facing messages. Anything not recognized is an internal error.
func respondError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError

	switch {
	case errors.As(err, &vErr):
		respond.SafeErrorV2(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, vErr.Error(), err))
	case errors.Is(err, sumUC.ErrEmptyInput):
		respond.SafeErrorV2(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "document contains no text to summarize", err))
	case errors.Is(err, extractor.ErrNotPDF):
		respond.SafeErrorV2(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "file is not a readable PDF", err))
	case errors.Is(err, docUC.ErrInvalidDocumentID):
		respond.SafeErrorV2(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "invalid document id", err))
	case errors.Is(err, docUC.ErrDocumentNotFound):
		respond.SafeErrorV2(w, http.StatusNotFound,
			respond.NewAppError(http.StatusNotFound, "document not found", err))
	case errors.Is(err, extractor.ErrTooManyPages):
		respond.SafeErrorV2(w, http.StatusRequestEntityTooLarge,
			respond.NewAppError(http.StatusRequestEntityTooLarge, "document has too many pages", err))
	case errors.Is(err, extractor.ErrNoTextLayer):
		respond.SafeErrorV2(w, http.StatusUnprocessableEntity,
			respond.NewAppError(http.StatusUnprocessableEntity, "document has no extractable text layer", err))
	case errors.Is(err, docUC.ErrPersistenceDisabled):
		respond.SafeErrorV2(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "document history is not available", err))
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

func toDTO(doc *entity.Document) DTO {
	return DTO{
		ID:         doc.ID.String(),
		Filename:   doc.Filename,
		PageCount:  doc.PageCount,
		TextUnits:  doc.TextUnits,
		ChunkCount: doc.ChunkCount,
		Summary:    doc.Summary,
		Provider:   doc.Provider,
		Model:      doc.Model,
		CreatedAt:  doc.CreatedAt,
	}
}
