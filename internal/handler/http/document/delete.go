package document

import (
	"net/http"

	"pdf-summary/internal/handler/http/pathutil"
	"pdf-summary/internal/handler/http/respond"
	docUC "pdf-summary/internal/usecase/document"
)

type DeleteHandler struct{ Svc *docUC.Service }

// ServeHTTP removes a document and its stored summary from the history.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractUUID(r.URL.Path, "/documents/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id.String()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
