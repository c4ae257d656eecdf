package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pdf-summary/internal/handler/http/requestid"
)

func benchHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
}

func BenchmarkLogging(b *testing.B) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := Logging(logger)(benchHandler())
	req := httptest.NewRequest("GET", "/documents", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkRateLimiter(b *testing.B) {
	rl := NewRateLimiter(b.N+1, time.Hour)
	handler := rl.Limit(benchHandler())
	req := httptest.NewRequest("GET", "/documents", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkFullChain(b *testing.B) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	rl := NewRateLimiter(b.N+1, time.Hour)

	var chain http.Handler = benchHandler()
	chain = Logging(logger)(chain)
	chain = Recover(logger)(chain)
	chain = rl.Limit(chain)
	chain = requestid.Middleware(chain)

	req := httptest.NewRequest("GET", "/documents", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chain.ServeHTTP(httptest.NewRecorder(), req)
	}
}
