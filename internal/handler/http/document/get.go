package document

import (
	"net/http"

	"pdf-summary/internal/handler/http/pathutil"
	"pdf-summary/internal/handler/http/respond"
	docUC "pdf-summary/internal/usecase/document"
)

type GetHandler struct{ Svc *docUC.Service }

// ServeHTTP returns a previously summarized document by ID, including its
// stored summary and processing metadata.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractUUID(r.URL.Path, "/documents/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := h.Svc.Get(r.Context(), id.String())
	if err != nil {
		respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(doc))
}
