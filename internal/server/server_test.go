package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/drawingx/internal/config"
)

func testRouter(cfg config.Config) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return SetupRouter(NewHandler(cfg, log), log)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestInfo(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/info", nil)
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["service"] != "drawingxd" {
		t.Errorf("service = %v", body["service"])
	}
}

func TestInfoOnExtractPath(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/extract", nil)
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "drawingxd") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExtractMissingField(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/extract", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "pdf_base64") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExtractBadBase64(t *testing.T) {
	payload := `{"pdf_base64": "not-valid-base64!!!"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/extract", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestExtractTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxRequestBytes = 16

	encoded := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 64))
	payload := `{"pdf_base64": "` + encoded + `"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/extract", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	testRouter(cfg).ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
}

func TestExtractUnreadableDocument(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("this is not a PDF"))
	payload := `{"pdf_base64": "` + encoded + `"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/extract", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRequestIDAssigned(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("no X-Request-ID header assigned")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	testRouter(config.Default()).ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("X-Request-ID = %q, want caller-supplied", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/extract", nil)
	testRouter(config.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS headers on preflight")
	}
}
