package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pdf-summary/internal/handler/http/requestid"
)

func jsonEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogging_RecordsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"summary":"ok"}`))
	})
	handler := requestid.Middleware(Logging(logger)(inner))

	req := httptest.NewRequest("POST", "/documents?async=false", nil)
	req.Header.Set(requestid.RequestIDHeader, "upload-abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := jsonEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["msg"] != "request completed" {
		t.Errorf("msg=%v", entry["msg"])
	}
	if entry["request_id"] != "upload-abc" {
		t.Errorf("request_id=%v", entry["request_id"])
	}
	if entry["method"] != "POST" || entry["path"] != "/documents" {
		t.Errorf("method=%v path=%v", entry["method"], entry["path"])
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("status=%v want 201", entry["status"])
	}
	if entry["bytes"] != float64(len(`{"summary":"ok"}`)) {
		t.Errorf("bytes=%v", entry["bytes"])
	}
}

func TestRecover_PanicBecomes500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("chunk index out of range")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code=%d want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "chunk index") {
		t.Error("panic detail leaked into response")
	}

	entries := jsonEntries(t, &buf)
	if len(entries) != 1 || entries[0]["msg"] != "panic recovered" {
		t.Fatalf("expected one panic entry, got %v", entries)
	}
	if entries[0]["stack"] == "" {
		t.Error("stack trace missing from log")
	}
}

func TestRecover_NormalRequestUntouched(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/documents", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("code=%d want 200", rec.Code)
	}
}

func TestRateLimiter_EnforcesLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: code=%d want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/documents", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("code=%d want 429", rec.Code)
	}
}

func TestRateLimiter_PerClientBudgets(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1111"); code != http.StatusOK {
		t.Errorf("first client: code=%d", code)
	}
	if code := send("10.0.0.2:2222"); code != http.StatusOK {
		t.Errorf("second client should have its own budget: code=%d", code)
	}
	if code := send("10.0.0.1:3333"); code != http.StatusTooManyRequests {
		t.Errorf("first client over budget: code=%d want 429", code)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Millisecond)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/documents", nil)
	req.RemoteAddr = "10.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: code=%d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request inside window: code=%d want 429", rec.Code)
	}

	time.Sleep(50 * time.Millisecond)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("after window expiry: code=%d want 200", rec.Code)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr only", "192.168.1.5:4321", nil, "192.168.1.5"},
		{"x-forwarded-for single", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 70.41.3.18"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"garbage xff falls through", "192.168.1.5:4321", map[string]string{"X-Forwarded-For": "not-an-ip"}, "192.168.1.5"},
		{"ipv6 remote addr", "[2001:db8::1]:443", nil, "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/documents", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := extractIP(r); got != tt.want {
				t.Errorf("extractIP=%q want %q", got, tt.want)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"203.0.113.7", "203.0.113.7"},
		{"203.0.113.7,70.41.3.18", "203.0.113.7"},
		{"2001:db8::1, 203.0.113.7", "2001:db8::1"},
		{"bogus", ""},
		{"bogus,203.0.113.7", ""},
	}
	for _, tt := range tests {
		if got := parseFirstIP(tt.in); got != tt.want {
			t.Errorf("parseFirstIP(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}
