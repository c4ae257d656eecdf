package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chatCompletionOK = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "the summary"}}]
}`

func TestCompatible_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionOK))
	}))
	defer server.Close()

	client := NewCompatible("test-key", server.URL+"/v1")
	out, err := client.Complete(context.Background(), "summarize it", Options{
		Model:          "deepseek-ai/DeepSeek-V3",
		Temperature:    0.3,
		MaxOutputUnits: 1500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "the summary" {
		t.Errorf("unexpected completion: %q", out)
	}
}

func TestCompatible_StatusNormalization(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusInternalServerError, ErrTransient},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error": {"message": "nope", "type": "server_error"}}`))
		}))

		client := NewCompatible("test-key", server.URL+"/v1")
		_, err := client.Complete(context.Background(), "p", Options{Model: "m"})
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
		server.Close()
	}
}

func TestCompatible_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	client := NewCompatible("test-key", server.URL+"/v1")
	_, err := client.Complete(context.Background(), "p", Options{Model: "m"})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestCompatible_ConnectionRefusedIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := NewCompatible("test-key", server.URL+"/v1")
	_, err := client.Complete(context.Background(), "p", Options{Model: "m"})
	if !errors.Is(err, ErrTransient) {
		t.Errorf("expected ErrTransient, got %v", err)
	}
}
