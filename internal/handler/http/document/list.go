package document

import (
	"log/slog"
	"net/http"
	"time"

	"pdf-summary/internal/common/pagination"
	"pdf-summary/internal/handler/http/requestid"
	"pdf-summary/internal/handler/http/respond"
	"pdf-summary/internal/observability/logging"
	docUC "pdf-summary/internal/usecase/document"
)

type ListHandler struct {
	Svc           *docUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP returns the summarization history, newest first, as a paginated
// page of documents.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	logger.Info("Document history request",
		"page", params.Page,
		"limit", params.Limit,
		"request_id", reqID)

	result, err := h.Svc.ListPaginated(ctx, params)
	if err != nil {
		logger.Error("Failed to list documents",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit,
			"request_id", reqID)
		pagination.RecordError("database")
		respondError(w, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, doc := range result.Data {
		dtos = append(dtos, toDTO(doc))
	}

	response := pagination.NewResponse(dtos, result.Pagination)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	logger.Info("Document history response",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
