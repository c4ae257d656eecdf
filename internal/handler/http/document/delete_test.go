package document_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"pdf-summary/internal/domain/entity"
	"pdf-summary/internal/handler/http/document"
)

func TestDeleteHandler_Success(t *testing.T) {
	doc := storedDocument()
	repo := &stubDocRepo{docs: map[uuid.UUID]*entity.Document{doc.ID: doc}}
	svc := newTestService(&stubExtractor{}, &stubSummarizer{}, repo)
	handler := document.DeleteHandler{Svc: svc}

	req := httptest.NewRequest(http.MethodDelete, "/documents/"+doc.ID.String(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(repo.docs) != 0 {
		t.Errorf("expected document removed, repo has %d", len(repo.docs))
	}
}

func TestDeleteHandler_NotFound(t *testing.T) {
	svc := newTestService(&stubExtractor{}, &stubSummarizer{}, &stubDocRepo{})
	handler := document.DeleteHandler{Svc: svc}

	req := httptest.NewRequest(http.MethodDelete, "/documents/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteHandler_InvalidID(t *testing.T) {
	svc := newTestService(&stubExtractor{}, &stubSummarizer{}, &stubDocRepo{})
	handler := document.DeleteHandler{Svc: svc}

	req := httptest.NewRequest(http.MethodDelete, "/documents/abc", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
