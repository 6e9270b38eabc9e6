package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthzWithoutRedis(t *testing.T) {
	_, db := setupTestDB(t)

	handler := handleHealth(testLogger(), db, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var checks map[string]struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(w.Body).Decode(&checks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if checks["sqlite"].Status != "ok" {
		t.Errorf("expected sqlite ok, got %q", checks["sqlite"].Status)
	}
	if checks["redis"].Status != "disabled" {
		t.Errorf("expected redis disabled, got %q", checks["redis"].Status)
	}
}

func TestHealthzBrokenDatabase(t *testing.T) {
	_, db := setupTestDB(t)
	db.Close()

	handler := handleHealth(testLogger(), db, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
