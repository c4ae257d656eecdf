package document

import (
	"log/slog"
	"net/http"

	"pdf-summary/internal/common/pagination"
	docUC "pdf-summary/internal/usecase/document"
)

// Register registers all document HTTP handlers with the given mux: upload
// and summarize, history listing, detail lookup, and deletion.
func Register(mux *http.ServeMux, svc *docUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST   /documents", UploadHandler{svc})
	mux.Handle("GET    /documents", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    /documents/", GetHandler{svc})
	mux.Handle("DELETE /documents/", DeleteHandler{svc})
}
