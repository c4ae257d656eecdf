package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body["error"]
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"summary": "three key points"})

	if rec.Code != http.StatusCreated {
		t.Errorf("code=%d want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type=%q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["summary"] != "three key points" {
		t.Errorf("body=%v", body)
	}
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	if rec.Code != http.StatusNoContent {
		t.Errorf("code=%d want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, errors.New("file field is required"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("code=%d want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != "file field is required" {
		t.Errorf("error=%q", got)
	}
}

func TestSafeError_ValidationMessagePasses(t *testing.T) {
	for _, msg := range []string{
		"invalid document id",
		"document not found",
		"page must be a positive integer",
		"filename too long",
	} {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusBadRequest, errors.New(msg))

		if got := decodeError(t, rec); got != msg {
			t.Errorf("safe message %q was masked to %q", msg, got)
		}
	}
}

func TestSafeError_InternalDetailMasked(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest,
		errors.New("pq: connection to postgres://user:pass@db failed"))

	if got := decodeError(t, rec); got != "internal server error" {
		t.Errorf("driver detail leaked: %q", got)
	}
}

func TestSafeError_ServerErrorAlwaysMasked(t *testing.T) {
	// The message contains a safe keyword but a 5xx never echoes it.
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError,
		errors.New("summary is required but provider call failed"))

	if got := decodeError(t, rec); got != "internal server error" {
		t.Errorf("5xx leaked message: %q", got)
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("pdftotext exited with status 1")
	appErr := NewAppError(http.StatusUnprocessableEntity, "file is not a readable PDF", inner)

	if appErr.Error() != inner.Error() {
		t.Errorf("Error()=%q", appErr.Error())
	}
	if !errors.Is(appErr, inner) {
		t.Error("Unwrap should expose the internal error")
	}

	bare := NewAppError(http.StatusNotFound, "document not found", nil)
	if bare.Error() != "document not found" {
		t.Errorf("Error()=%q", bare.Error())
	}
}

func TestSafeErrorV2_AppErrorUsesItsOwnCodeAndMessage(t *testing.T) {
	inner := errors.New("OPENAI_API_KEY rejected: sk-proj-secret")
	err := fmt.Errorf("summarize: %w",
		NewAppError(http.StatusServiceUnavailable, "summarization provider unavailable", inner))

	rec := httptest.NewRecorder()
	SafeErrorV2(rec, http.StatusInternalServerError, err)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code=%d want the AppError's 503", rec.Code)
	}
	if got := decodeError(t, rec); got != "summarization provider unavailable" {
		t.Errorf("error=%q", got)
	}
}

func TestSafeErrorV2_PlainErrorFallsBack(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeErrorV2(rec, http.StatusBadRequest, errors.New("invalid query parameter: page must be a positive integer"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("code=%d want 400", rec.Code)
	}
	if got := decodeError(t, rec); got == "internal server error" {
		t.Error("validation message should have passed through")
	}
}

func TestSafeErrorV2_NilError(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeErrorV2(rec, http.StatusInternalServerError, nil)

	if rec.Body.Len() != 0 {
		t.Errorf("nil error should write nothing, got %q", rec.Body.String())
	}
}
