package introspect

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrobotgo/chrobot/supervisor"
)

func TestServer_Health(t *testing.T) {
	s := NewServer(&supervisor.Supervisor{}, ":0")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %q, want ok", body["status"])
	}
}

func TestServer_CallRejectsMissingMethod(t *testing.T) {
	s := NewServer(&supervisor.Supervisor{}, ":0")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/call", bytes.NewReader([]byte(`{}`)))
	s.srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
