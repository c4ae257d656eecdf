package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_DefaultsTo200(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	if w.StatusCode() != http.StatusOK {
		t.Errorf("status=%d want 200", w.StatusCode())
	}
	if w.BytesWritten() != 0 {
		t.Errorf("bytes=%d want 0", w.BytesWritten())
	}
}

func TestWriteHeader_Recorded(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusUnprocessableEntity)

	if w.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("status=%d want 422", w.StatusCode())
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("underlying code=%d want 422", rec.Code)
	}
}

func TestWriteHeader_SecondCallIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	if w.StatusCode() != http.StatusCreated {
		t.Errorf("status=%d, first WriteHeader should win", w.StatusCode())
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("underlying code=%d want 201", rec.Code)
	}
}

func TestWrite_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	body := []byte(`{"summary":"the paper proposes a new index"}`)
	if _, err := w.Write(body); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		t.Fatal(err)
	}

	if w.BytesWritten() != len(body)+1 {
		t.Errorf("bytes=%d want %d", w.BytesWritten(), len(body)+1)
	}
	if w.StatusCode() != http.StatusOK {
		t.Errorf("implicit status=%d want 200", w.StatusCode())
	}
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	if w.Unwrap() != http.ResponseWriter(rec) {
		t.Error("Unwrap should return the wrapped writer")
	}
}
