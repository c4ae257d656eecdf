package document_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"pdf-summary/internal/domain/entity"
	"pdf-summary/internal/handler/http/document"
	"pdf-summary/internal/infra/extractor"
	docUC "pdf-summary/internal/usecase/document"
)

/* ───────── モック実装 ───────── */

type stubExtractor struct {
	result *extractor.Result
	err    error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (*extractor.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

type stubDocRepo struct {
	docs      map[uuid.UUID]*entity.Document
	createErr error
	listErr   error
}

func (s *stubDocRepo) Create(_ context.Context, doc *entity.Document) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.docs == nil {
		s.docs = make(map[uuid.UUID]*entity.Document)
	}
	s.docs[doc.ID] = doc
	return nil
}

func (s *stubDocRepo) Get(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	return s.docs[id], nil
}

func (s *stubDocRepo) ListRecent(_ context.Context, _, _ int) ([]*entity.Document, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*entity.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (s *stubDocRepo) CountDocuments(_ context.Context) (int64, error) {
	return int64(len(s.docs)), nil
}

func (s *stubDocRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.docs[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

/* ───────── ヘルパ ───────── */

func newTestService(ext *stubExtractor, sum *stubSummarizer, repo *stubDocRepo) *docUC.Service {
	svc := &docUC.Service{
		Extractor:  ext,
		Summarizer: sum,
		Provider:   "openai",
		Model:      "gpt-4o-mini",
		ChunkUnits: 1000,
	}
	if repo != nil {
		svc.Repo = repo
	}
	return svc
}

func sampleExtraction() *extractor.Result {
	return &extractor.Result{
		Text:  "This report covers quarterly revenue and operating costs in detail.",
		Pages: 3,
	}
}

func multipartPDF(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

/* ───────── テストケース ───────── */

func TestUploadHandler_Success(t *testing.T) {
	repo := &stubDocRepo{}
	svc := newTestService(
		&stubExtractor{result: sampleExtraction()},
		&stubSummarizer{summary: "A short summary."},
		repo,
	)
	handler := document.UploadHandler{Svc: svc}

	body, contentType := multipartPDF(t, "file", "report.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var dto document.DTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Filename != "report.pdf" {
		t.Errorf("expected filename report.pdf, got %q", dto.Filename)
	}
	if dto.Summary != "A short summary." {
		t.Errorf("expected summary, got %q", dto.Summary)
	}
	if dto.PageCount != 3 {
		t.Errorf("expected page count 3, got %d", dto.PageCount)
	}
	if dto.Provider != "openai" || dto.Model != "gpt-4o-mini" {
		t.Errorf("unexpected provider/model: %q/%q", dto.Provider, dto.Model)
	}
	if _, err := uuid.Parse(dto.ID); err != nil {
		t.Errorf("expected UUID id, got %q", dto.ID)
	}
	if len(repo.docs) != 1 {
		t.Errorf("expected document persisted, repo has %d", len(repo.docs))
	}
}

func TestUploadHandler_MissingFileField(t *testing.T) {
	svc := newTestService(&stubExtractor{result: sampleExtraction()}, &stubSummarizer{summary: "x"}, nil)
	handler := document.UploadHandler{Svc: svc}

	body, contentType := multipartPDF(t, "attachment", "report.pdf", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadHandler_RejectsNonPDFFilename(t *testing.T) {
	svc := newTestService(&stubExtractor{result: sampleExtraction()}, &stubSummarizer{summary: "x"}, nil)
	handler := document.UploadHandler{Svc: svc}

	body, contentType := multipartPDF(t, "file", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadHandler_TooManyPages(t *testing.T) {
	svc := newTestService(&stubExtractor{err: extractor.ErrTooManyPages}, &stubSummarizer{summary: "x"}, nil)
	handler := document.UploadHandler{Svc: svc}

	body, contentType := multipartPDF(t, "file", "huge.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestUploadHandler_NoTextLayer(t *testing.T) {
	svc := newTestService(&stubExtractor{err: extractor.ErrNoTextLayer}, &stubSummarizer{summary: "x"}, nil)
	handler := document.UploadHandler{Svc: svc}

	body, contentType := multipartPDF(t, "file", "scan.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestUploadHandler_WorksWithoutRepo(t *testing.T) {
	svc := newTestService(
		&stubExtractor{result: sampleExtraction()},
		&stubSummarizer{summary: "Stateless summary."},
		nil,
	)
	handler := document.UploadHandler{Svc: svc}

	body, contentType := multipartPDF(t, "file", "report.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var dto document.DTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Summary != "Stateless summary." {
		t.Errorf("expected summary, got %q", dto.Summary)
	}
	if dto.CreatedAt.IsZero() || time.Since(dto.CreatedAt) > time.Minute {
		t.Errorf("unexpected created_at: %v", dto.CreatedAt)
	}
}
