package document

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"pdf-summary/internal/handler/http/respond"
	docUC "pdf-summary/internal/usecase/document"
)

// maxFormMemory bounds how much of the multipart form is held in memory;
// larger uploads spill to disk.
const maxFormMemory = 8 << 20

type UploadHandler struct {
	Svc *docUC.Service
}

// ServeHTTP accepts a PDF upload and returns its summary. The request body
// is a multipart form with the PDF in the "file" field. Processing is
// synchronous: the response carries the completed summary.
func (h UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("file field is required"))
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("file must be a PDF"))
		return
	}

	// The extractor shells out to poppler, which needs a file on disk.
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := tmp.Close(); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	doc, err := h.Svc.Process(r.Context(), tmpPath, header.Filename)
	if err != nil {
		slog.ErrorContext(r.Context(), "document processing failed",
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(doc))
}
