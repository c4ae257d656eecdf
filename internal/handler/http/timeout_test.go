package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeout_FastRequestPassesThrough(t *testing.T) {
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"summary":"done"}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("code=%d want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "done") {
		t.Errorf("body=%q", rec.Body.String())
	}
}

func TestTimeout_SlowRequestGets504(t *testing.T) {
	release := make(chan struct{})
	handler := Timeout(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", nil))
	close(release)

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("code=%d want 504", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("504 body is not JSON: %v", err)
	}
	if body["error"] != "request timeout" {
		t.Errorf("error=%q", body["error"])
	}
}

func TestTimeout_HandlerSeesCanceledContext(t *testing.T) {
	canceled := make(chan struct{})
	handler := Timeout(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		close(canceled)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", nil))

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("handler context was never canceled")
	}
}

func TestTimeout_LateHandlerWriteSuppressed(t *testing.T) {
	wrote := make(chan error, 1)
	handler := Timeout(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		_, err := w.Write([]byte(`{"summary":"too late"}`))
		wrote <- err
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", nil))

	select {
	case err := <-wrote:
		if err != http.ErrHandlerTimeout {
			t.Errorf("late write err=%v want http.ErrHandlerTimeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never attempted its late write")
	}

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("code=%d want 504", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "too late") {
		t.Error("late handler output leaked into the 504 response")
	}
}

func TestTimeout_HandlerWinsRaceKeepsItsResponse(t *testing.T) {
	handler := Timeout(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/documents", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("code=%d want 200", rec.Code)
	}
}
